/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package player drives timed playback of a source.
package player

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/friendsincode/trecs/internal/events"
	"github.com/friendsincode/trecs/internal/source"
	"github.com/friendsincode/trecs/internal/telemetry"
	"github.com/friendsincode/trecs/internal/unit"
)

// Default markers written around every playback.
const (
	StartMarker = ">>> Play <<<"
	EndMarker   = ">>> End <<<"
)

const tracerName = "github.com/friendsincode/trecs/internal/player"

// Player renders the units of a source in time order, sleeping for the gap
// between consecutive units.
type Player struct {
	src    *source.Source
	screen unit.Screen
	timer  unit.Timer
	logger zerolog.Logger

	bus         *events.Bus
	metrics     *telemetry.Metrics
	tracer      trace.Tracer
	startMarker string
	endMarker   string
}

// New creates a player and prepares every unit of src. The player takes
// ownership of src; its units cannot be prepared again by another player.
func New(src *source.Source, screen unit.Screen, timer unit.Timer, logger zerolog.Logger, opts ...Option) (*Player, error) {
	if src == nil {
		return nil, errors.New("player: nil source")
	}
	if screen == nil {
		return nil, errors.New("player: nil screen")
	}
	if timer == nil {
		return nil, errors.New("player: nil timer")
	}

	p := &Player{
		src:         src,
		screen:      screen,
		timer:       timer,
		logger:      logger.With().Str("component", "player").Logger(),
		tracer:      noop.NewTracerProvider().Tracer(tracerName),
		startMarker: StartMarker,
		endMarker:   EndMarker,
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := Prepare(src.Units(), timer); err != nil {
		var perr *unit.PreparationError
		if errors.As(err, &perr) {
			p.metrics.ObservePreparationFailure(string(perr.Kind))
		}
		p.logger.Error().Err(err).Msg("preparation failed")
		return nil, fmt.Errorf("prepare units: %w", err)
	}

	p.logger.Debug().Int("units", src.Len()).Msg("units prepared")
	p.publish(events.EventReelPrepared, events.Payload{events.KeyUnits: src.Len()})
	return p, nil
}

// Timestamps returns the source's ascending unit times.
func (p *Player) Timestamps() []time.Duration {
	return p.src.Timestamps()
}

// At returns the unit governing the given time.
func (p *Player) At(at time.Duration) unit.Unit {
	return p.src.At(at)
}

// Play renders the whole reel once. The first unit is rendered immediately;
// every later unit follows a sleep equal to its gap from the previous one.
// The context is checked before each sleep; a cancelled playback returns the
// context error without writing the end marker.
func (p *Player) Play(ctx context.Context) (err error) {
	runID := uuid.NewString()
	logger := p.logger.With().Str("run_id", runID).Logger()

	start := events.Payload{events.KeyRunID: runID, events.KeyUnits: p.src.Len()}
	ctx, span := p.tracer.Start(ctx, "player.play")
	telemetry.AddSpanAttributes(span, start)
	defer func() {
		if err != nil {
			p.publish(events.EventPlayFailed, events.Payload{
				events.KeyRunID: runID,
				events.KeyError: err.Error(),
			})
		}
		telemetry.RecordError(span, err)
		span.End()
	}()

	p.metrics.ObservePlay()
	p.publish(events.EventPlayStart, start)
	logger.Debug().Int("units", p.src.Len()).Msg("playback started")

	if err := p.screen.WriteLine(p.startMarker); err != nil {
		return fmt.Errorf("write start marker: %w", err)
	}

	stamps := p.src.Timestamps()
	if err := p.render(ctx, logger, runID, stamps[0]); err != nil {
		return err
	}
	for i := 1; i < len(stamps); i++ {
		prev, curr := stamps[i-1], stamps[i]
		if err := ctx.Err(); err != nil {
			logger.Debug().Err(err).Str("at", unit.Millis(prev)).Msg("playback cancelled")
			return err
		}
		gap := curr - prev
		p.timer.Sleep(gap)
		p.metrics.ObserveSleep(gap)
		if err := p.render(ctx, logger, runID, curr); err != nil {
			return err
		}
	}

	if err := p.screen.WriteLine(p.endMarker); err != nil {
		return fmt.Errorf("write end marker: %w", err)
	}

	p.publish(events.EventPlayEnd, events.Payload{events.KeyRunID: runID})
	logger.Debug().Msg("playback finished")
	return nil
}

func (p *Player) render(ctx context.Context, logger zerolog.Logger, runID string, at time.Duration) error {
	u := p.src.At(at)
	kind := string(u.Kind())
	payload := events.Payload{
		events.KeyRunID: runID,
		events.KeyAt:    events.Millis(at),
		events.KeyKind:  kind,
	}

	_, span := p.tracer.Start(ctx, "unit.render")
	telemetry.AddSpanAttributes(span, payload)
	defer span.End()

	if err := u.Render(p.screen); err != nil {
		telemetry.RecordError(span, err)
		logger.Error().Err(err).Str("kind", kind).Str("at", unit.Millis(at)).Msg("render failed")
		return fmt.Errorf("render %s at %sms: %w", kind, unit.Millis(at), err)
	}

	p.metrics.ObserveRender(kind)
	p.publish(events.EventUnitRender, payload)
	return nil
}

func (p *Player) publish(eventType events.EventType, payload events.Payload) {
	if p.bus == nil {
		return
	}
	p.bus.Publish(eventType, payload)
}
