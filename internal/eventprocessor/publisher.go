// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package eventprocessor

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/tomtom215/utilitrack/internal/logging"
	"github.com/tomtom215/utilitrack/internal/metrics"
	"github.com/tomtom215/utilitrack/internal/models"
)

// Publisher publishes domain events to the bus.
type Publisher struct {
	pub message.Publisher
	now func() time.Time
}

// NewPublisher wraps a Watermill publisher.
func NewPublisher(pub message.Publisher) (*Publisher, error) {
	if pub == nil {
		return nil, ErrNilPublisher
	}
	return &Publisher{pub: pub, now: time.Now}, nil
}

// Publish encodes and publishes event on its topic. The correlation ID of
// ctx, when present, travels with the message.
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	msg, err := Encode(event)
	if err != nil {
		return err
	}
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		middleware.SetCorrelationID(id, msg)
	}

	if err := p.pub.Publish(event.Topic(), msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.Topic(), err)
	}

	metrics.RecordEventPublished(event.Topic())
	logging.CtxDebug(ctx).
		Str("topic", event.Topic()).
		Str("event_id", event.ID()).
		Msg("Event published")
	return nil
}

// PublishReadingsImported announces a completed import.
func (p *Publisher) PublishReadingsImported(ctx context.Context, summary *models.ImportSummary) error {
	return p.Publish(ctx, NewReadingsImportedEvent(summary))
}

// PublishTargetsChanged announces a created or deleted target.
func (p *Publisher) PublishTargetsChanged(ctx context.Context, action string, target *models.Target) error {
	return p.Publish(ctx, NewTargetsChangedEvent(action, target, p.now()))
}
