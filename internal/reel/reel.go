/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package reel decodes reel documents into sources.
//
// A reel lists its units either with explicit times:
//
//	units:
//	  - {at: 0, frame: "-"}
//	  - {at: 25, transition: terse}
//	  - {at: 210, typing: Federico, duration: 30}
//
// or keyed by time, in which case the time is injected into each unit:
//
//	keyed:
//	  0: {frame: "-"}
//	  25: {transition: verbose}
//
// Times and durations are milliseconds.
package reel

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/friendsincode/trecs/internal/source"
	"github.com/friendsincode/trecs/internal/unit"
)

//go:embed demo.yaml
var demoYAML []byte

var (
	// ErrNoUnits indicates a document with neither units nor keyed entries.
	ErrNoUnits = errors.New("reel has no units")

	// ErrBothForms indicates a document mixing the units and keyed forms.
	ErrBothForms = errors.New("reel must use either units or keyed, not both")
)

// Document is a decoded reel.
type Document struct {
	Title string            `yaml:"title"`
	Units []Entry           `yaml:"units"`
	Keyed map[float64]Entry `yaml:"keyed"`
}

// Entry describes one unit. Exactly one of Frame, Transition and Typing is set.
type Entry struct {
	At         *float64 `yaml:"at"`
	Frame      *string  `yaml:"frame"`
	Transition string   `yaml:"transition"`
	Typing     *string  `yaml:"typing"`
	Duration   float64  `yaml:"duration"`
}

// Options tune how entries become units.
type Options struct {
	// Codes supplies the decorative codes of verbose transitions; nil keeps
	// the unseeded default.
	Codes func() int
}

// Decode reads a reel document. Unknown fields are rejected.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoUnits
		}
		return nil, fmt.Errorf("decode reel: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Demo returns the built-in demonstration reel.
func Demo() *Document {
	doc, err := Decode(bytes.NewReader(demoYAML))
	if err != nil {
		panic(fmt.Sprintf("embedded demo reel: %v", err))
	}
	return doc
}

func (d *Document) validate() error {
	switch {
	case len(d.Units) == 0 && len(d.Keyed) == 0:
		return ErrNoUnits
	case len(d.Units) > 0 && len(d.Keyed) > 0:
		return ErrBothForms
	}
	for i, e := range d.Units {
		if err := e.validate(); err != nil {
			return fmt.Errorf("unit %d: %w", i, err)
		}
	}
	for at, e := range d.Keyed {
		if e.At != nil {
			return fmt.Errorf("keyed unit %sms: at is implied by the key", unit.Millis(unit.Ms(at)))
		}
		if err := e.validate(); err != nil {
			return fmt.Errorf("keyed unit %sms: %w", unit.Millis(unit.Ms(at)), err)
		}
	}
	return nil
}

func (e Entry) validate() error {
	n := 0
	if e.Frame != nil {
		n++
	}
	if e.Transition != "" {
		n++
		if _, err := unit.ParseStyle(e.Transition); err != nil {
			return err
		}
	}
	if e.Typing != nil {
		n++
	}
	if n != 1 {
		return fmt.Errorf("exactly one of frame, transition or typing must be set (got %d)", n)
	}
	if e.Duration != 0 && e.Typing == nil {
		return errors.New("duration only applies to typing")
	}
	if e.Duration < 0 {
		return fmt.Errorf("negative duration %v", e.Duration)
	}
	return nil
}

// Build turns the document into a source.
func (d *Document) Build(opts Options) (*source.Source, error) {
	if len(d.Keyed) > 0 {
		keys := make([]float64, 0, len(d.Keyed))
		for at := range d.Keyed {
			keys = append(keys, at)
		}
		slices.Sort(keys)

		entries := make([]source.Entry, 0, len(keys))
		for _, at := range keys {
			entries = append(entries, source.Entry{At: unit.Ms(at), Unit: d.Keyed[at].toUnit(opts)})
		}
		return source.FromEntries(entries)
	}

	units := make([]unit.Unit, 0, len(d.Units))
	for _, e := range d.Units {
		u := e.toUnit(opts)
		if e.At != nil {
			u.SetTime(unit.Ms(*e.At))
		}
		units = append(units, u)
	}
	return source.FromUnits(units...)
}

func (e Entry) toUnit(opts Options) unit.Unit {
	switch {
	case e.Frame != nil:
		return unit.NewFrame(*e.Frame)
	case e.Typing != nil:
		return unit.NewTyping(*e.Typing, unit.Ms(e.Duration))
	default:
		t := unit.NewTransition(unit.Style(e.Transition))
		if opts.Codes != nil {
			t.WithCode(opts.Codes)
		}
		return t
	}
}

// Duration returns the span from the first to the last unit time.
func (d *Document) Duration() time.Duration {
	var times []float64
	for _, e := range d.Units {
		if e.At != nil {
			times = append(times, *e.At)
		}
	}
	for at := range d.Keyed {
		times = append(times, at)
	}
	if len(times) == 0 {
		return 0
	}
	return unit.Ms(slices.Max(times) - slices.Min(times))
}
