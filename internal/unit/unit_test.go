package unit

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type lines []string

func (l *lines) WriteLine(line string) error {
	*l = append(*l, line)
	return nil
}

type sleeps []time.Duration

func (s *sleeps) Sleep(d time.Duration) {
	*s = append(*s, d)
}

const ms = time.Millisecond

func TestMillis(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0"},
		{20 * ms, "20"},
		{155 * ms, "155"},
		{3750 * time.Microsecond, "3.75"},
		{Ms(2.5), "2.5"},
	}
	for _, tt := range tests {
		if got := Millis(tt.in); got != tt.want {
			t.Errorf("Millis(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFrameRender(t *testing.T) {
	f := NewFrameAt(20*ms, "--")
	if err := f.Prepare(State{}); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	var out lines
	if err := f.Render(&out); err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out) != 1 || out[0] != "Frame: 20: --" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestTransitionPrepareCapturesNeighbours(t *testing.T) {
	prev := NewFrameAt(45*ms, "---")
	next := NewFrameAt(200*ms, "***")
	tr := NewTransitionAt(50*ms, StyleVerbose).WithCode(func() int { return 270 })

	if err := tr.Prepare(State{Previous: prev, Next: next}); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if tr.Duration() != 155*ms || tr.From() != "---" || tr.To() != "***" {
		t.Fatalf("unexpected transition state: %s %q %q", tr.Duration(), tr.From(), tr.To())
	}

	var out lines
	if err := tr.Render(&out); err != nil {
		t.Fatalf("render: %v", err)
	}
	if out[0] != `Transition 155ms : "---" ==(270)==> "***"` {
		t.Fatalf("unexpected verbose render %q", out[0])
	}
}

func TestTransitionTerseRender(t *testing.T) {
	tr := NewTransitionAt(25*ms, StyleTerse)
	if err := tr.Prepare(State{Previous: NewFrameAt(20*ms, "--"), Next: NewFrameAt(45*ms, "---")}); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	var out lines
	if err := tr.Render(&out); err != nil {
		t.Fatalf("render: %v", err)
	}
	if out[0] != `"--"==>"---"` {
		t.Fatalf("unexpected terse render %q", out[0])
	}
}

func TestTransitionDecorationCodeInRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		if c := decorationCode(); c < 100 || c > 999 {
			t.Fatalf("decoration code %d out of range", c)
		}
	}
}

func TestTransitionPreconditions(t *testing.T) {
	frame := NewFrameAt(0, "-")
	typing := NewTypingAt(10*ms, "abc", 0)

	tests := []struct {
		name  string
		state State
		want  error
		side  string
	}{
		{"no previous", State{Next: frame}, ErrNeighborMissing, "previous"},
		{"no next", State{Previous: frame}, ErrNeighborMissing, "next"},
		{"no neighbours", State{}, ErrNeighborMissing, "previous"},
		{"previous is typing", State{Previous: typing, Next: frame}, ErrNeighborNotFrame, "previous"},
		{"next is transition", State{Previous: frame, Next: NewTransitionAt(5*ms, StyleTerse)}, ErrNeighborNotFrame, "next"},
		{"previous without time", State{Previous: NewFrame("x"), Next: frame}, ErrNeighborTimeNotSet, "previous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTransitionAt(5*ms, StyleTerse)
			err := tr.Prepare(tt.state)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var perr *PreparationError
			if !errors.As(err, &perr) {
				t.Fatalf("expected PreparationError, got %T", err)
			}
			if perr.Kind != KindTransition || perr.Side != tt.side || !perr.HasTime || perr.At != 5*ms {
				t.Fatalf("unexpected error details: %+v", perr)
			}
			if !strings.Contains(err.Error(), "transition at time 5") {
				t.Fatalf("error does not name the unit: %v", err)
			}
		})
	}
}

func TestTransitionUnknownStyle(t *testing.T) {
	tr := NewTransitionAt(5*ms, Style("fancy"))
	err := tr.Prepare(State{Previous: NewFrameAt(0, "a"), Next: NewFrameAt(10*ms, "b")})
	if !errors.Is(err, ErrUnknownStyle) {
		t.Fatalf("expected ErrUnknownStyle, got %v", err)
	}
	var perr *PreparationError
	if !errors.As(err, &perr) || perr.Kind != KindTransition || perr.At != 5*ms {
		t.Fatalf("unexpected preparation error %+v", perr)
	}
	if _, err := ParseStyle("fancy"); !errors.Is(err, ErrUnknownStyle) {
		t.Fatalf("expected ErrUnknownStyle from ParseStyle, got %v", err)
	}
}

func TestTransitionRenderBeforePrepare(t *testing.T) {
	var out lines
	if err := NewTransition(StyleTerse).Render(&out); !errors.Is(err, ErrNotPrepared) {
		t.Fatalf("expected ErrNotPrepared, got %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no output, got %q", out)
	}
}

func TestPrepareTwiceFails(t *testing.T) {
	state := State{Timer: &sleeps{}, Previous: NewFrameAt(0, "a"), Next: NewFrameAt(10*ms, "b")}

	f := NewFrameAt(0, "a")
	if err := f.Prepare(state); err != nil {
		t.Fatalf("first prepare: %v", err)
	}
	if err := f.Prepare(state); !errors.Is(err, ErrAlreadyPrepared) {
		t.Fatalf("expected ErrAlreadyPrepared, got %v", err)
	}

	tr := NewTransitionAt(5*ms, StyleTerse)
	if err := tr.Prepare(state); err != nil {
		t.Fatalf("first prepare: %v", err)
	}
	if err := tr.Prepare(state); !errors.Is(err, ErrAlreadyPrepared) {
		t.Fatalf("expected ErrAlreadyPrepared, got %v", err)
	}

	ty := NewTypingAt(5*ms, "ab", 0)
	if err := ty.Prepare(state); err != nil {
		t.Fatalf("first prepare: %v", err)
	}
	if err := ty.Prepare(state); !errors.Is(err, ErrAlreadyPrepared) {
		t.Fatalf("expected ErrAlreadyPrepared, got %v", err)
	}
}

func TestTypingStepLaw(t *testing.T) {
	var timer sleeps
	ty := NewTypingAt(210*ms, "Federico", 30*ms)
	if err := ty.Prepare(State{Timer: &timer, Previous: NewFrameAt(200*ms, "***")}); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if ty.Duration() != 30*ms {
		t.Fatalf("expected fixed duration to survive a single neighbour, got %s", ty.Duration())
	}
	if ty.Step() != 3750*time.Microsecond {
		t.Fatalf("expected step 3.75ms, got %s", ty.Step())
	}

	var out lines
	if err := ty.Render(&out); err != nil {
		t.Fatalf("render: %v", err)
	}

	want := []string{"F", "Fe", "Fed", "Fede", "Feder", "Federi", "Federic", "Federico"}
	if len(out) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(out))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, out[i], want[i])
		}
	}
	if len(timer) != len(want) {
		t.Fatalf("expected %d sleeps, got %d", len(want), len(timer))
	}
	for i, d := range timer {
		if d != ty.Step() {
			t.Errorf("sleep %d = %s, want %s", i, d, ty.Step())
		}
	}
}

func TestTypingDurationFromNeighbours(t *testing.T) {
	ty := NewTypingAt(30*ms, "abcd", 0)
	state := State{Timer: &sleeps{}, Previous: NewFrameAt(20*ms, "x"), Next: NewFrameAt(60*ms, "y")}
	if err := ty.Prepare(state); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if ty.Duration() != 40*ms || ty.Step() != 10*ms {
		t.Fatalf("unexpected duration/step: %s/%s", ty.Duration(), ty.Step())
	}
}

func TestTypingSleepsAddUpToDuration(t *testing.T) {
	var timer sleeps
	ty := NewTypingAt(0, "abc", 10*ms)
	if err := ty.Prepare(State{Timer: &timer}); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if ty.Step() != 3333333*time.Nanosecond {
		t.Fatalf("unexpected step %s", ty.Step())
	}
	var out lines
	if err := ty.Render(&out); err != nil {
		t.Fatalf("render: %v", err)
	}

	want := []time.Duration{3333333, 3333333, 3333334}
	if len(timer) != len(want) {
		t.Fatalf("expected %d sleeps, got %v", len(want), timer)
	}
	var total time.Duration
	for i, d := range timer {
		if d != want[i] {
			t.Errorf("sleep %d = %d, want %d", i, d, want[i])
		}
		total += d
	}
	if total != 10*ms {
		t.Fatalf("sleeps add up to %s, want 10ms", total)
	}
}

func TestTypingDefaultDuration(t *testing.T) {
	ty := NewTypingAt(0, "ab", 0)
	if err := ty.Prepare(State{Timer: &sleeps{}}); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if ty.Duration() != DefaultTypingDuration || ty.Step() != 5*ms {
		t.Fatalf("unexpected duration/step: %s/%s", ty.Duration(), ty.Step())
	}
}

func TestTypingMultibyteContent(t *testing.T) {
	ty := NewTypingAt(0, "héé", 30*ms)
	if err := ty.Prepare(State{Timer: &sleeps{}}); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	var out lines
	if err := ty.Render(&out); err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out) != 3 || out[1] != "hé" || ty.Step() != 10*ms {
		t.Fatalf("unexpected output %q step %s", out, ty.Step())
	}
}

func TestTypingPreconditions(t *testing.T) {
	if err := NewTyping("abc", 0).Prepare(State{}); !errors.Is(err, ErrTimeNotSet) {
		t.Fatalf("expected ErrTimeNotSet, got %v", err)
	} else if !strings.Contains(err.Error(), "unset time") {
		t.Fatalf("error does not describe the unit: %v", err)
	}
	if err := NewTypingAt(0, "", 0).Prepare(State{}); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
	if err := NewTypingAt(0, "abc", 0).Prepare(State{}); !errors.Is(err, ErrTimerMissing) {
		t.Fatalf("expected ErrTimerMissing, got %v", err)
	}
	var out lines
	if err := NewTypingAt(0, "a", 0).Render(&out); !errors.Is(err, ErrNotPrepared) {
		t.Fatalf("expected ErrNotPrepared, got %v", err)
	}
}

func TestParseStyle(t *testing.T) {
	if s, err := ParseStyle("terse"); err != nil || s != StyleTerse {
		t.Fatalf("ParseStyle(terse) = %q, %v", s, err)
	}
	if _, err := ParseStyle("fancy"); err == nil {
		t.Fatal("expected error for unknown style")
	}
}

func TestSeededCodesAreDeterministic(t *testing.T) {
	a, b := SeededCodes(7), SeededCodes(7)
	for i := 0; i < 20; i++ {
		x, y := a(), b()
		if x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
		if x < 100 || x > 999 {
			t.Fatalf("code %d out of range", x)
		}
	}
}
