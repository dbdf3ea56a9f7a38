// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package eventprocessor

import (
	"fmt"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/goccy/go-json"

	"github.com/tomtom215/utilitrack/internal/cache"
	"github.com/tomtom215/utilitrack/internal/logging"
	"github.com/tomtom215/utilitrack/internal/metrics"
)

// CacheInvalidator drops cached reports.
type CacheInvalidator interface {
	DeletePrefix(prefix string) int
}

// WebSocketBroadcaster sends an encoded websocket message to every client.
type WebSocketBroadcaster interface {
	BroadcastRaw(data []byte)
}

// broadcastEnvelope matches the websocket Message wire shape.
type broadcastEnvelope struct {
	Type string `json:"type"`
	Data Event  `json:"data"`
}

// Websocket message types, one per topic.
var messageTypes = map[string]string{
	TopicReadingsImported: "readings_imported",
	TopicTargetsChanged:   "targets_changed",
}

// Handlers consumes domain events. Either dependency may be nil.
type Handlers struct {
	cache       CacheInvalidator
	broadcaster WebSocketBroadcaster

	handled      atomic.Int64
	invalidated  atomic.Int64
	broadcasts   atomic.Int64
	poisonedSeen atomic.Int64
}

// HandlerStats reports what the handlers have done so far.
type HandlerStats struct {
	Handled     int64 `json:"handled"`
	Invalidated int64 `json:"invalidated_entries"`
	Broadcasts  int64 `json:"broadcasts"`
	Poisoned    int64 `json:"poisoned"`
}

// NewHandlers creates the event consumers.
func NewHandlers(invalidator CacheInvalidator, broadcaster WebSocketBroadcaster) *Handlers {
	return &Handlers{cache: invalidator, broadcaster: broadcaster}
}

// Stats returns a snapshot of the handler counters.
func (h *Handlers) Stats() HandlerStats {
	return HandlerStats{
		Handled:     h.handled.Load(),
		Invalidated: h.invalidated.Load(),
		Broadcasts:  h.broadcasts.Load(),
		Poisoned:    h.poisonedSeen.Load(),
	}
}

// HandleReadingsImported invalidates the resource's cached reports and
// notifies dashboards.
func (h *Handlers) HandleReadingsImported(msg *message.Message) (err error) {
	defer func() { metrics.RecordEventConsumed(TopicReadingsImported, err) }()

	var event ReadingsImportedEvent
	if err := Decode(msg, &event); err != nil {
		return err
	}

	h.invalidate(string(event.ResourceType))
	h.broadcast(&event)
	h.handled.Add(1)

	logging.Debug().
		Str("event_id", event.EventID).
		Str("import_id", event.ImportID).
		Str("resource", string(event.ResourceType)).
		Str("correlation_id", middleware.MessageCorrelationID(msg)).
		Msg("Readings imported event handled")
	return nil
}

// HandleTargetsChanged invalidates the resource's cached reports, which
// embed the active target, and notifies dashboards.
func (h *Handlers) HandleTargetsChanged(msg *message.Message) (err error) {
	defer func() { metrics.RecordEventConsumed(TopicTargetsChanged, err) }()

	var event TargetsChangedEvent
	if err := Decode(msg, &event); err != nil {
		return err
	}

	h.invalidate(string(event.ResourceType))
	h.broadcast(&event)
	h.handled.Add(1)

	logging.Debug().
		Str("event_id", event.EventID).
		Str("action", event.Action).
		Int64("target_id", event.TargetID).
		Str("correlation_id", middleware.MessageCorrelationID(msg)).
		Msg("Targets changed event handled")
	return nil
}

// HandlePoisoned logs a message that exhausted its retries.
func (h *Handlers) HandlePoisoned(msg *message.Message) error {
	h.poisonedSeen.Add(1)
	logging.Error().
		Str("message_id", msg.UUID).
		Str("topic", msg.Metadata.Get(middleware.PoisonedTopicKey)).
		Str("handler", msg.Metadata.Get(middleware.PoisonedHandlerKey)).
		Str("reason", msg.Metadata.Get(middleware.ReasonForPoisonedKey)).
		Msg("Event dropped after retries")
	return nil
}

func (h *Handlers) invalidate(resource string) {
	if h.cache == nil {
		return
	}
	removed := h.cache.DeletePrefix(cache.ResourcePrefix(resource))
	h.invalidated.Add(int64(removed))
}

func (h *Handlers) broadcast(event Event) {
	if h.broadcaster == nil {
		return
	}
	data, err := json.Marshal(broadcastEnvelope{Type: messageTypes[event.Topic()], Data: event})
	if err != nil {
		logging.Warn().Err(fmt.Errorf("encode broadcast: %w", err)).Msg("Skipping websocket broadcast")
		return
	}
	h.broadcaster.BroadcastRaw(data)
	h.broadcasts.Add(1)
}
