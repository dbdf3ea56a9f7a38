// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package eventprocessor

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/utilitrack/internal/models"
)

// Topics
const (
	TopicReadingsImported = "readings.imported"
	TopicTargetsChanged   = "targets.changed"
	TopicPoison           = "events.poison"
)

// SchemaVersion is bumped on incompatible payload changes.
const SchemaVersion = 1

// Target change actions
const (
	TargetCreated = "created"
	TargetDeleted = "deleted"
)

// Event is a payload that can travel on the bus.
type Event interface {
	Topic() string
	ID() string
	Validate() error
}

// ReadingsImportedEvent announces an import that changed stored readings.
type ReadingsImportedEvent struct {
	SchemaVersion int                 `json:"schema_version"`
	EventID       string              `json:"event_id"`
	ImportID      string              `json:"import_id"`
	ResourceType  models.ResourceType `json:"resource_type"`
	Inserted      int                 `json:"inserted"`
	Overwritten   int                 `json:"overwritten"`
	From          string              `json:"from,omitempty"`
	To            string              `json:"to,omitempty"`
	OccurredAt    time.Time           `json:"occurred_at"`
}

// NewReadingsImportedEvent builds the event for a completed import.
func NewReadingsImportedEvent(summary *models.ImportSummary) *ReadingsImportedEvent {
	return &ReadingsImportedEvent{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.NewString(),
		ImportID:      summary.ID,
		ResourceType:  summary.ResourceType,
		Inserted:      summary.Inserted,
		Overwritten:   summary.Overwritten,
		From:          summary.From,
		To:            summary.To,
		OccurredAt:    summary.CompletedAt,
	}
}

// Topic implements Event.
func (e *ReadingsImportedEvent) Topic() string { return TopicReadingsImported }

// ID implements Event.
func (e *ReadingsImportedEvent) ID() string { return e.EventID }

// Validate checks required fields.
func (e *ReadingsImportedEvent) Validate() error {
	if e.EventID == "" {
		return fmt.Errorf("%w: event_id is required", ErrInvalidEvent)
	}
	if !e.ResourceType.Valid() {
		return fmt.Errorf("%w: unknown resource type %q", ErrInvalidEvent, e.ResourceType)
	}
	if e.Inserted < 0 || e.Overwritten < 0 {
		return fmt.Errorf("%w: negative row counts", ErrInvalidEvent)
	}
	return nil
}

// TargetsChangedEvent announces a created or deleted target.
type TargetsChangedEvent struct {
	SchemaVersion int                 `json:"schema_version"`
	EventID       string              `json:"event_id"`
	Action        string              `json:"action"`
	TargetID      int64               `json:"target_id"`
	PeriodType    models.PeriodType   `json:"period_type"`
	ResourceType  models.ResourceType `json:"resource_type"`
	OccurredAt    time.Time           `json:"occurred_at"`
}

// NewTargetsChangedEvent builds the event for a target change.
func NewTargetsChangedEvent(action string, target *models.Target, at time.Time) *TargetsChangedEvent {
	return &TargetsChangedEvent{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.NewString(),
		Action:        action,
		TargetID:      target.ID,
		PeriodType:    target.PeriodType,
		ResourceType:  target.ResourceType,
		OccurredAt:    at.UTC(),
	}
}

// Topic implements Event.
func (e *TargetsChangedEvent) Topic() string { return TopicTargetsChanged }

// ID implements Event.
func (e *TargetsChangedEvent) ID() string { return e.EventID }

// Validate checks required fields.
func (e *TargetsChangedEvent) Validate() error {
	if e.EventID == "" {
		return fmt.Errorf("%w: event_id is required", ErrInvalidEvent)
	}
	if e.Action != TargetCreated && e.Action != TargetDeleted {
		return fmt.Errorf("%w: unknown action %q", ErrInvalidEvent, e.Action)
	}
	if !e.ResourceType.Valid() {
		return fmt.Errorf("%w: unknown resource type %q", ErrInvalidEvent, e.ResourceType)
	}
	if !e.PeriodType.Valid() {
		return fmt.Errorf("%w: unknown period type %q", ErrInvalidEvent, e.PeriodType)
	}
	return nil
}
