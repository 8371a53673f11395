/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package timer provides the delay mechanisms a player paces output with.
package timer

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/friendsincode/trecs/internal/unit"
)

// Mode selects a timer implementation.
type Mode string

const (
	ModeLog  Mode = "log"  // print the delay, do not wait
	ModeReal Mode = "real" // actually wait
	ModeNone Mode = "none" // neither print nor wait
)

// ParseMode maps a mode name to a Mode.
func ParseMode(name string) (Mode, error) {
	switch Mode(name) {
	case ModeLog, ModeReal, ModeNone:
		return Mode(name), nil
	}
	return "", fmt.Errorf("unknown timer mode %q", name)
}

// New builds the timer for a mode. Log timers write to screen; real timers
// stretch every delay by scale.
func New(mode Mode, screen unit.Screen, scale float64) (unit.Timer, error) {
	switch mode {
	case ModeLog:
		return NewLog(screen), nil
	case ModeReal:
		return NewReal(scale), nil
	case ModeNone:
		return &Recorder{}, nil
	}
	return nil, fmt.Errorf("unknown timer mode %q", mode)
}

const logIndent = 30

// Log simulates delays by writing them to a screen.
type Log struct {
	screen unit.Screen
	indent string
}

// NewLog creates a simulated timer printing to screen.
func NewLog(screen unit.Screen) *Log {
	return &Log{screen: screen, indent: strings.Repeat(" ", logIndent)}
}

// Sleep writes "sleep <ms>" and returns immediately. Write failures are
// dropped; Sleep has no error path.
func (l *Log) Sleep(d time.Duration) {
	_ = l.screen.WriteLine(l.indent + "sleep " + unit.Millis(d))
}

// Real blocks for each delay, multiplied by a scale factor.
type Real struct {
	scale float64
	sleep func(time.Duration)
}

// NewReal creates a blocking timer. A non-positive scale means 1.
func NewReal(scale float64) *Real {
	if scale <= 0 {
		scale = 1
	}
	return &Real{scale: scale, sleep: time.Sleep}
}

func (r *Real) Scale() float64 { return r.scale }

func (r *Real) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	r.sleep(time.Duration(float64(d) * r.scale))
}

// Recorder records requested delays without waiting.
type Recorder struct {
	mu     sync.Mutex
	sleeps []time.Duration
}

func (r *Recorder) Sleep(d time.Duration) {
	r.mu.Lock()
	r.sleeps = append(r.sleeps, d)
	r.mu.Unlock()
}

// Sleeps returns the recorded delays in call order.
func (r *Recorder) Sleeps() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.sleeps...)
}

// Total returns the sum of all recorded delays.
func (r *Recorder) Total() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total time.Duration
	for _, d := range r.sleeps {
		total += d
	}
	return total
}
