// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

// Package database provides the DuckDB store for readings and targets.
//
// # Overview
//
// The store holds two tables. readings keeps one value per (date,
// resource_type); re-importing a day overwrites its value. targets keeps
// consumption goals; the active one for a date is the target with the latest
// valid_from on or before that date.
//
// # Architecture
//
//   - database.go: connection lifecycle and pool configuration
//   - schema.go: table creation
//   - migrations.go: versioned migrations tracked in schema_migrations
//   - readings.go: upsert and range reads
//   - aggregates.go: weekday, month and daily aggregates for seasonal views
//   - targets.go: target administration and active target lookup
//   - breaker.go: circuit breaker around analytics reads
//   - database_utils.go: context helpers, checkpointing and close helpers
//
// # Read Resilience
//
// Analytics reads run through a gobreaker circuit breaker. When the store
// keeps failing the breaker opens and reads fail fast with ErrStoreUnavailable
// until the timeout elapses. Writes bypass the breaker so imports report
// per-row failures directly.
//
// # Dates
//
// Dates are stored as DATE and passed as time.Time values at midnight UTC.
// Weekday aggregates use DuckDB's dayofweek numbering (Sunday=0); callers
// remap to Monday-first.
//
// # Testing
//
// Tests use in-memory databases (Path ":memory:") created through
// setupTestDB, which serializes DuckDB access across parallel tests.
package database
