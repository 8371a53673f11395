/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package unit

import (
	"fmt"
	"time"
)

// Frame renders static content at an instant.
type Frame struct {
	Stamp
	content  string
	prepared bool
}

// NewFrame creates a frame whose time is injected later by the source.
func NewFrame(content string) *Frame {
	return &Frame{content: content}
}

// NewFrameAt creates a frame positioned at the given offset.
func NewFrameAt(at time.Duration, content string) *Frame {
	return &Frame{Stamp: At(at), content: content}
}

func (f *Frame) Content() string { return f.content }

func (f *Frame) Kind() Kind { return KindFrame }

// Prepare only marks the frame prepared; a frame needs nothing from its
// neighbours.
func (f *Frame) Prepare(State) error {
	if f.prepared {
		return prepErr(f, "", ErrAlreadyPrepared)
	}
	f.prepared = true
	return nil
}

func (f *Frame) Render(screen Screen) error {
	at := ""
	if d, ok := f.Time(); ok {
		at = Millis(d)
	}
	return screen.WriteLine(fmt.Sprintf("Frame: %s: %s", at, f.content))
}
