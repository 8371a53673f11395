/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package events

import (
	"sync"
	"time"
)

// EventType enumerates event categories.
type EventType string

const (
	EventReelPrepared EventType = "reel.prepared"
	EventPlayStart    EventType = "play.start"
	EventUnitRender   EventType = "unit.render"
	EventPlayEnd      EventType = "play.end"
	EventPlayFailed   EventType = "play.failed"
)

// Payload generic event payload.
type Payload map[string]any

// Common payload keys.
const (
	KeyRunID = "run_id"
	KeyAt    = "at_ms"
	KeyKind  = "kind"
	KeyUnits = "units"
	KeyError = "error"
)

// Subscriber receives event payloads.
type Subscriber chan Payload

// Bus implements a simple in-process pubsub.
type Bus struct {
	mu   sync.RWMutex
	subs map[EventType][]Subscriber
}

// NewBus creates an event bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[EventType][]Subscriber)}
}

// Subscribe registers a subscriber for event type with room for buffer
// pending payloads. Payloads published while the buffer is full are dropped.
func (b *Bus) Subscribe(eventType EventType, buffer int) Subscriber {
	if buffer < 1 {
		buffer = 8
	}
	ch := make(Subscriber, buffer)
	b.mu.Lock()
	b.subs[eventType] = append(b.subs[eventType], ch)
	b.mu.Unlock()
	return ch
}

// Publish sends payload to subscribers without blocking.
func (b *Bus) Publish(eventType EventType, payload Payload) {
	b.mu.RLock()
	subs := append([]Subscriber(nil), b.subs[eventType]...)
	b.mu.RUnlock()
	for _, sub := range subs {
		select {
		case sub <- payload:
		default:
		}
	}
}

// Unsubscribe removes the subscriber and closes its channel.
func (b *Bus) Unsubscribe(eventType EventType, sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subs[eventType]
	for i, candidate := range subs {
		if candidate == sub {
			b.subs[eventType] = append(subs[:i], subs[i+1:]...)
			close(sub)
			return
		}
	}
}

// Millis expresses d as fractional milliseconds for payloads.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
