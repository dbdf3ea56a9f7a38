// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package eventprocessor

import "errors"

// ErrNilPublisher is returned when attempting to create a publisher with nil input.
var ErrNilPublisher = errors.New("publisher cannot be nil")

// ErrInvalidEvent is returned when an event fails validation.
var ErrInvalidEvent = errors.New("invalid event")

// ErrUnexpectedTopic is returned when a message is decoded as the wrong event kind.
var ErrUnexpectedTopic = errors.New("unexpected topic")
