/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package player

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/friendsincode/trecs/internal/events"
	"github.com/friendsincode/trecs/internal/telemetry"
)

// Option configures a Player.
type Option func(*Player)

// WithBus publishes playback events to bus.
func WithBus(bus *events.Bus) Option {
	return func(p *Player) { p.bus = bus }
}

// WithMetrics records playback counters.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(p *Player) { p.metrics = m }
}

// WithTracer emits player.play and unit.render spans.
func WithTracer(t trace.Tracer) Option {
	return func(p *Player) { p.tracer = t }
}

// WithMarkers overrides the lines written around a playback.
func WithMarkers(start, end string) Option {
	return func(p *Player) {
		p.startMarker = start
		p.endMarker = end
	}
}
