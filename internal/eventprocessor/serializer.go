// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package eventprocessor

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
)

// Metadata keys set on every message.
const (
	MetadataTopic         = "topic"
	MetadataSchemaVersion = "schema_version"
)

// Encode validates event and wraps it in a Watermill message whose UUID is
// the event ID.
func Encode(event Event) (*message.Message, error) {
	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID(), data)
	msg.Metadata.Set(MetadataTopic, event.Topic())
	msg.Metadata.Set(MetadataSchemaVersion, fmt.Sprint(SchemaVersion))
	return msg, nil
}

// Decode unmarshals msg into event, rejecting messages published on
// another topic.
func Decode(msg *message.Message, event Event) error {
	if topic := msg.Metadata.Get(MetadataTopic); topic != "" && topic != event.Topic() {
		return fmt.Errorf("%w: got %q, want %q", ErrUnexpectedTopic, topic, event.Topic())
	}
	if err := json.Unmarshal(msg.Payload, event); err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}
	if err := event.Validate(); err != nil {
		return fmt.Errorf("validate event: %w", err)
	}
	return nil
}
