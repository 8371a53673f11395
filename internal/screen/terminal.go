/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package screen

import (
	"context"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Terminal renders lines onto a full-screen tcell display, scrolling so the
// most recent lines stay visible.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
	lines  []string
	keys   chan struct{}
	once   sync.Once
}

// NewTerminal draws onto an initialised tcell screen.
func NewTerminal(s tcell.Screen) *Terminal {
	return &Terminal{screen: s, keys: make(chan struct{}, 1)}
}

// Listen polls terminal input until the screen is closed. The terminal runs
// in raw mode, so Ctrl-C and Esc arrive as key events rather than signals;
// both call interrupt. Any other key wakes WaitKey.
func (t *Terminal) Listen(interrupt func()) {
	go func() {
		for {
			switch ev := t.screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape {
					interrupt()
					continue
				}
				select {
				case t.keys <- struct{}{}:
				default:
				}
			case *tcell.EventResize:
				t.mu.Lock()
				t.screen.Sync()
				t.draw()
				t.mu.Unlock()
			}
		}
	}()
}

// WaitKey blocks until a key is pressed after the call or ctx is done. It
// reports whether a key was pressed.
func (t *Terminal) WaitKey(ctx context.Context) bool {
	select {
	case <-t.keys:
	default:
	}
	select {
	case <-t.keys:
		return true
	case <-ctx.Done():
		return false
	}
}

func (t *Terminal) WriteLine(line string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, height := t.screen.Size()
	if height < 1 {
		height = 1
	}
	t.lines = append(t.lines, line)
	if over := len(t.lines) - height; over > 0 {
		t.lines = append(t.lines[:0], t.lines[over:]...)
	}
	t.draw()
	return nil
}

func (t *Terminal) draw() {
	width, _ := t.screen.Size()
	t.screen.Clear()
	for row, line := range t.lines {
		style := lineStyle(line)
		col := 0
		for _, r := range line {
			if col >= width {
				break
			}
			t.screen.SetContent(col, row, r, nil, style)
			col++
		}
	}
	t.screen.Show()
}

func lineStyle(line string) tcell.Style {
	switch {
	case strings.HasPrefix(line, ">>>"):
		return tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	case strings.HasPrefix(strings.TrimLeft(line, " "), "sleep "):
		return tcell.StyleDefault.Dim(true)
	default:
		return tcell.StyleDefault
	}
}

// Lines returns the lines currently visible, oldest first.
func (t *Terminal) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.lines...)
}

// Close restores the terminal. Calls after the first are no-ops.
func (t *Terminal) Close() {
	t.once.Do(t.screen.Fini)
}
