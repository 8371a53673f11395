/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the playback collectors.
type Metrics struct {
	Plays               prometheus.Counter
	UnitsRendered       *prometheus.CounterVec
	SleepSeconds        prometheus.Counter
	PreparationFailures *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Plays: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "trecs",
			Name:      "plays_total",
			Help:      "Completed and attempted playbacks.",
		}),
		UnitsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trecs",
			Name:      "units_rendered_total",
			Help:      "Units rendered, by kind.",
		}, []string{"kind"}),
		SleepSeconds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "trecs",
			Name:      "sleep_seconds_total",
			Help:      "Requested inter-unit delay in seconds.",
		}),
		PreparationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trecs",
			Name:      "preparation_failures_total",
			Help:      "Units whose preparation failed, by kind.",
		}, []string{"kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.Plays, m.UnitsRendered, m.SleepSeconds, m.PreparationFailures)
	}
	return m
}

// ObserveRender counts one rendered unit.
func (m *Metrics) ObserveRender(kind string) {
	if m == nil {
		return
	}
	m.UnitsRendered.WithLabelValues(kind).Inc()
}

// ObserveSleep adds a requested delay.
func (m *Metrics) ObserveSleep(d time.Duration) {
	if m == nil {
		return
	}
	m.SleepSeconds.Add(d.Seconds())
}

// ObservePlay counts one playback.
func (m *Metrics) ObservePlay() {
	if m == nil {
		return
	}
	m.Plays.Inc()
}

// ObservePreparationFailure counts one failed unit preparation.
func (m *Metrics) ObservePreparationFailure(kind string) {
	if m == nil {
		return
	}
	m.PreparationFailures.WithLabelValues(kind).Inc()
}

// Totals sums every counter gathered from g by metric name, across labels.
func Totals(g prometheus.Gatherer) (map[string]float64, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}
	totals := make(map[string]float64, len(families))
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				totals[mf.GetName()] += c.GetValue()
			}
		}
	}
	return totals, nil
}
