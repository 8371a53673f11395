/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package source indexes playable units by time.
//
// A Source is immutable once built. Its timestamps, ordered units and
// by-time view are derived eagerly at construction, so a Source can be shared
// freely between readers.
package source

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/friendsincode/trecs/internal/unit"
)

var (
	// ErrEmpty indicates a source built from no units.
	ErrEmpty = errors.New("source has no units")

	// ErrNilUnit indicates a nil unit in the input.
	ErrNilUnit = errors.New("nil unit")

	// ErrMissingTime indicates a self-timed unit without a time.
	ErrMissingTime = errors.New("unit has no time")

	// ErrDuplicateTime indicates two units claiming the same time.
	ErrDuplicateTime = errors.New("duplicate unit time")

	// ErrDuplicateUnit indicates the same unit listed under two times.
	ErrDuplicateUnit = errors.New("unit listed more than once")
)

// DuplicateTimeError names the colliding time and the kinds of both units.
type DuplicateTimeError struct {
	At     time.Duration
	First  unit.Kind
	Second unit.Kind
}

func (e *DuplicateTimeError) Error() string {
	return fmt.Sprintf("%v at %sms (%s and %s)", ErrDuplicateTime, unit.Millis(e.At), e.First, e.Second)
}

func (e *DuplicateTimeError) Unwrap() error {
	return ErrDuplicateTime
}

// Entry pairs a unit with the time it should be injected with.
type Entry struct {
	At   time.Duration
	Unit unit.Unit
}

// Source is the ordered, immutable index of a reel's units.
type Source struct {
	stamps []time.Duration
	units  []unit.Unit
	byTime map[time.Duration]unit.Unit
}

// FromUnits builds a source from units that already carry their own time.
func FromUnits(units ...unit.Unit) (*Source, error) {
	entries := make([]Entry, 0, len(units))
	for i, u := range units {
		if u == nil {
			return nil, fmt.Errorf("unit %d: %w", i, ErrNilUnit)
		}
		at, ok := u.Time()
		if !ok {
			return nil, fmt.Errorf("unit %d (%s): %w", i, u.Kind(), ErrMissingTime)
		}
		entries = append(entries, Entry{At: at, Unit: u})
	}
	return build(entries)
}

// FromEntries builds a source from (time, unit) pairs, injecting each time
// into its unit.
func FromEntries(entries []Entry) (*Source, error) {
	for i, e := range entries {
		if e.Unit == nil {
			return nil, fmt.Errorf("entry %d: %w", i, ErrNilUnit)
		}
	}
	// Validate before injecting so a rejected input leaves its units untouched.
	src, err := build(slices.Clone(entries))
	if err != nil {
		return nil, err
	}
	for i, u := range src.units {
		u.SetTime(src.stamps[i])
	}
	return src, nil
}

// FromMap builds a source from a time-to-unit mapping.
func FromMap(m map[time.Duration]unit.Unit) (*Source, error) {
	entries := make([]Entry, 0, len(m))
	for at, u := range m {
		entries = append(entries, Entry{At: at, Unit: u})
	}
	return FromEntries(entries)
}

func build(entries []Entry) (*Source, error) {
	if len(entries) == 0 {
		return nil, ErrEmpty
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(a.At, b.At)
	})

	src := &Source{
		stamps: make([]time.Duration, len(entries)),
		units:  make([]unit.Unit, len(entries)),
		byTime: make(map[time.Duration]unit.Unit, len(entries)),
	}
	// A source owns its units; one unit cannot hold two times.
	seen := make(map[unit.Unit]time.Duration, len(entries))
	for i, e := range entries {
		if i > 0 && entries[i-1].At == e.At {
			return nil, &DuplicateTimeError{At: e.At, First: entries[i-1].Unit.Kind(), Second: e.Unit.Kind()}
		}
		if first, ok := seen[e.Unit]; ok {
			return nil, fmt.Errorf("%w: %s at %sms and %sms", ErrDuplicateUnit, e.Unit.Kind(), unit.Millis(first), unit.Millis(e.At))
		}
		seen[e.Unit] = e.At
		src.stamps[i] = e.At
		src.units[i] = e.Unit
		src.byTime[e.At] = e.Unit
	}
	return src, nil
}

// Len returns the number of units.
func (s *Source) Len() int {
	return len(s.units)
}

// Timestamps returns the unit times in ascending order. Callers get their own
// copy; the source itself never changes.
func (s *Source) Timestamps() []time.Duration {
	return slices.Clone(s.stamps)
}

// Units returns the units in ascending time order.
func (s *Source) Units() []unit.Unit {
	return slices.Clone(s.units)
}

// All iterates over (time, unit) pairs in ascending time order.
func (s *Source) All() iter.Seq2[time.Duration, unit.Unit] {
	return func(yield func(time.Duration, unit.Unit) bool) {
		for i, u := range s.units {
			if !yield(s.stamps[i], u) {
				return
			}
		}
	}
}

// Lookup returns the unit at exactly the given time.
func (s *Source) Lookup(at time.Duration) (unit.Unit, bool) {
	u, ok := s.byTime[at]
	return u, ok
}

// Resolve returns the timestamp governing the given time.
func (s *Source) Resolve(at time.Duration) time.Duration {
	return Resolve(s.stamps, at)
}

// At returns the unit governing the given time.
func (s *Source) At(at time.Duration) unit.Unit {
	return s.byTime[s.Resolve(at)]
}
