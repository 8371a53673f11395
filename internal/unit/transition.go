/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package unit

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Style selects how a transition describes itself.
type Style string

const (
	// StyleVerbose renders duration, both contents and a decorative code.
	StyleVerbose Style = "verbose"
	// StyleTerse renders only the two contents.
	StyleTerse Style = "terse"
)

// ParseStyle maps a style name to a Style.
func ParseStyle(name string) (Style, error) {
	switch Style(name) {
	case StyleVerbose, StyleTerse:
		return Style(name), nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownStyle, name)
}

// Transition describes the change between the frames surrounding it.
type Transition struct {
	Stamp
	style    Style
	code     func() int
	prepared bool

	duration time.Duration
	from     string
	to       string
}

// NewTransition creates an unprepared transition rendered in the given style.
func NewTransition(style Style) *Transition {
	return &Transition{style: style, code: decorationCode}
}

// NewTransitionAt creates a transition positioned at the given offset.
func NewTransitionAt(at time.Duration, style Style) *Transition {
	t := NewTransition(style)
	t.Stamp = At(at)
	return t
}

// WithCode replaces the source of the decorative code printed by verbose
// transitions.
func (t *Transition) WithCode(fn func() int) *Transition {
	t.code = fn
	return t
}

func decorationCode() int {
	return 100 + rand.IntN(900)
}

// SeededCodes returns a deterministic source of decoration codes.
func SeededCodes(seed uint64) func() int {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return func() int {
		return 100 + r.IntN(900)
	}
}

func (t *Transition) Kind() Kind { return KindTransition }
func (t *Transition) Style() Style { return t.style }
func (t *Transition) Duration() time.Duration { return t.duration }
func (t *Transition) From() string { return t.from }
func (t *Transition) To() string { return t.to }

// Prepare captures the gap between the surrounding frames and their contents.
func (t *Transition) Prepare(state State) error {
	if t.prepared {
		return prepErr(t, "", ErrAlreadyPrepared)
	}
	if _, err := ParseStyle(string(t.style)); err != nil {
		return prepErr(t, "", ErrUnknownStyle)
	}

	prev, err := frameNeighbor(state.Previous)
	if err != nil {
		return prepErr(t, "previous", err)
	}
	next, err := frameNeighbor(state.Next)
	if err != nil {
		return prepErr(t, "next", err)
	}

	prevAt, err := neighborTime(prev)
	if err != nil {
		return prepErr(t, "previous", err)
	}
	nextAt, err := neighborTime(next)
	if err != nil {
		return prepErr(t, "next", err)
	}

	t.duration = nextAt - prevAt
	t.from = prev.Content()
	t.to = next.Content()
	t.prepared = true
	return nil
}

func frameNeighbor(u Unit) (*Frame, error) {
	if u == nil {
		return nil, ErrNeighborMissing
	}
	f, ok := u.(*Frame)
	if !ok {
		return nil, ErrNeighborNotFrame
	}
	return f, nil
}

func (t *Transition) Render(screen Screen) error {
	if !t.prepared {
		return ErrNotPrepared
	}
	switch t.style {
	case StyleTerse:
		return screen.WriteLine(fmt.Sprintf("%q==>%q", t.from, t.to))
	case StyleVerbose:
		return screen.WriteLine(fmt.Sprintf("Transition %sms : %q ==(%d)==> %q",
			Millis(t.duration), t.from, t.code(), t.to))
	default:
		return fmt.Errorf("%w %q", ErrUnknownStyle, t.style)
	}
}
