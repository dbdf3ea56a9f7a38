// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package database

import (
	"errors"
	"io"
	"strings"

	"github.com/tomtom215/utilitrack/internal/logging"
)

var (
	// ErrTargetNotFound is returned when a target id does not exist.
	ErrTargetNotFound = errors.New("target not found")

	// ErrStoreUnavailable is returned while the read circuit breaker is open.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrClosed is returned when the database connection has been closed.
	ErrClosed = errors.New("database connection is nil")
)

// closeWithLog closes a resource and logs any error
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error.
// Use this for cleanup in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

// isTransactionConflict checks if an error is a DuckDB transaction conflict
func isTransactionConflict(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "Transaction conflict") ||
		strings.Contains(errStr, "Conflict on update") ||
		strings.Contains(errStr, "cannot update a table that has been altered")
}
