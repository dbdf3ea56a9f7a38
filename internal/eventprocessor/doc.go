// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

// Package eventprocessor carries in-process domain events over Watermill.
//
// Writers (the importer, target handlers) publish events to a GoChannel
// pub/sub. A Watermill router delivers them to consumers that invalidate
// cached reports and notify connected dashboards:
//
//	┌──────────┐  readings.imported  ┌───────────────┐
//	│ Importer ├────────────────────►│               ├──► cache invalidation
//	└──────────┘                     │  GoChannel +  │
//	┌──────────┐  targets.changed    │    Router     ├──► websocket broadcast
//	│ Targets  ├────────────────────►│               │
//	└──────────┘                     └───────────────┘
//
// # Delivery
//
// The bus is not persistent. Events published before the router is running,
// or while no consumer is subscribed, are dropped. Consumers that keep
// failing after the configured retries are moved to the poison topic and
// logged instead of being redelivered forever.
//
// # Middleware
//
// Router middleware, outermost first:
//   - CorrelationID: propagates the request correlation ID
//   - PoisonQueue: parks messages that exhausted their retries
//   - Retry: exponential backoff for transient handler failures
//   - Recoverer: turns handler panics into errors
package eventprocessor
