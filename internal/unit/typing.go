/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package unit

import "time"

// DefaultTypingDuration applies when a typing unit has no pair of neighbours
// to derive its duration from.
const DefaultTypingDuration = 10 * time.Millisecond

// Typing renders its content progressively, one character at a time.
type Typing struct {
	Stamp
	content  []rune
	duration time.Duration
	step     time.Duration
	timer    Timer
	prepared bool
}

// NewTyping creates a typing unit. A zero duration selects
// DefaultTypingDuration.
func NewTyping(content string, duration time.Duration) *Typing {
	if duration <= 0 {
		duration = DefaultTypingDuration
	}
	return &Typing{content: []rune(content), duration: duration}
}

// NewTypingAt creates a typing unit positioned at the given offset.
func NewTypingAt(at time.Duration, content string, duration time.Duration) *Typing {
	t := NewTyping(content, duration)
	t.Stamp = At(at)
	return t
}

func (t *Typing) Kind() Kind { return KindTyping }
func (t *Typing) Content() string { return string(t.content) }
func (t *Typing) Duration() time.Duration { return t.duration }
func (t *Typing) Step() time.Duration { return t.step }

// Prepare derives the duration from the neighbour gap when both neighbours
// exist and splits it evenly across the characters.
func (t *Typing) Prepare(state State) error {
	if t.prepared {
		return prepErr(t, "", ErrAlreadyPrepared)
	}
	if _, ok := t.Time(); !ok {
		return prepErr(t, "", ErrTimeNotSet)
	}
	if len(t.content) == 0 {
		return prepErr(t, "", ErrEmptyContent)
	}
	if state.Timer == nil {
		return prepErr(t, "", ErrTimerMissing)
	}

	if state.Previous != nil && state.Next != nil {
		prevAt, err := neighborTime(state.Previous)
		if err != nil {
			return prepErr(t, "previous", err)
		}
		nextAt, err := neighborTime(state.Next)
		if err != nil {
			return prepErr(t, "next", err)
		}
		t.duration = nextAt - prevAt
	}

	t.timer = state.Timer
	t.step = t.duration / time.Duration(len(t.content))
	t.prepared = true
	return nil
}

// Render writes each growing prefix of the content on its own line and sleeps
// one step after every line. Step is truncated to whole nanoseconds, so the
// last sleep also carries the remainder and the sleeps add up to Duration.
func (t *Typing) Render(screen Screen) error {
	if !t.prepared {
		return ErrNotPrepared
	}
	last := len(t.content) - 1
	for i := range t.content {
		if err := screen.WriteLine(string(t.content[:i+1])); err != nil {
			return err
		}
		step := t.step
		if i == last {
			step += t.duration - t.step*time.Duration(len(t.content))
		}
		t.timer.Sleep(step)
	}
	return nil
}
