/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package unit defines the playable units of a reel: static frames,
// transitions between frames and progressively typed text.
//
// Every unit goes through two states. It starts unprepared, receives its
// temporal neighbours exactly once through Prepare, and may then be rendered
// any number of times.
package unit

import (
	"strconv"
	"time"
)

// Kind enumerates unit variants.
type Kind string

const (
	KindFrame      Kind = "frame"
	KindTransition Kind = "transition"
	KindTyping     Kind = "typing"
)

// Screen is the output sink units render to.
type Screen interface {
	WriteLine(line string) error
}

// Timer suspends playback for the requested duration.
type Timer interface {
	Sleep(d time.Duration)
}

// Unit is a playable element of a reel.
type Unit interface {
	Kind() Kind
	// Time reports the unit's position in the reel and whether it was set.
	Time() (time.Duration, bool)
	SetTime(at time.Duration)
	Prepare(state State) error
	Render(screen Screen) error
}

// State is the snapshot handed to a unit during preparation. Previous and Next
// are nil at the edges of the reel.
type State struct {
	Timer    Timer
	Previous Unit
	Next     Unit
}

// Stamp holds a unit's time. Embed it to satisfy the Time/SetTime half of Unit.
type Stamp struct {
	at  time.Duration
	set bool
}

// At returns a Stamp positioned at the given offset.
func At(at time.Duration) Stamp {
	return Stamp{at: at, set: true}
}

// Time implements Unit.
func (s *Stamp) Time() (time.Duration, bool) {
	return s.at, s.set
}

// SetTime implements Unit.
func (s *Stamp) SetTime(at time.Duration) {
	s.at = at
	s.set = true
}

// Millis formats d as milliseconds using the shortest exact decimal form,
// e.g. 20, 155 or 3.75.
func Millis(d time.Duration) string {
	return strconv.FormatFloat(float64(d)/float64(time.Millisecond), 'f', -1, 64)
}

// Ms converts a millisecond count, possibly fractional, to a duration.
func Ms(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

func neighborTime(u Unit) (time.Duration, error) {
	at, ok := u.Time()
	if !ok {
		return 0, ErrNeighborTimeNotSet
	}
	return at, nil
}
