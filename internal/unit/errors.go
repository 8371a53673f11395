/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package unit

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNeighborMissing indicates a unit that needs both neighbours sits at an edge of the reel.
	ErrNeighborMissing = errors.New("neighbour missing")

	// ErrNeighborNotFrame indicates a transition neighbour that is not a frame.
	ErrNeighborNotFrame = errors.New("neighbour must be a frame")

	// ErrNeighborTimeNotSet indicates a neighbour without a time.
	ErrNeighborTimeNotSet = errors.New("neighbour time not set")

	// ErrTimeNotSet indicates a unit that needs its own time but has none.
	ErrTimeNotSet = errors.New("time not set")

	// ErrEmptyContent indicates typed content with no characters to pace.
	ErrEmptyContent = errors.New("content is empty")

	// ErrAlreadyPrepared indicates a second Prepare call on the same unit.
	ErrAlreadyPrepared = errors.New("unit already prepared")

	// ErrNotPrepared indicates Render was called before Prepare.
	ErrNotPrepared = errors.New("unit not prepared")

	// ErrTimerMissing indicates a paced unit prepared without a timer.
	ErrTimerMissing = errors.New("timer missing")

	// ErrUnknownStyle indicates a transition style other than verbose or terse.
	ErrUnknownStyle = errors.New("unknown transition style")
)

// PreparationError reports a unit whose preparation precondition failed.
type PreparationError struct {
	Kind    Kind
	At      time.Duration
	HasTime bool
	Side    string // "previous", "next" or empty
	Err     error
}

func (e *PreparationError) Error() string {
	where := "unset time"
	if e.HasTime {
		where = "time " + Millis(e.At)
	}
	if e.Side != "" {
		return fmt.Sprintf("prepare %s at %s: %s %v", e.Kind, where, e.Side, e.Err)
	}
	return fmt.Sprintf("prepare %s at %s: %v", e.Kind, where, e.Err)
}

func (e *PreparationError) Unwrap() error {
	return e.Err
}

func prepErr(u Unit, side string, err error) error {
	at, ok := u.Time()
	return &PreparationError{Kind: u.Kind(), At: at, HasTime: ok, Side: side, Err: err}
}
