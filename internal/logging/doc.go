// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

// Package logging provides centralized zerolog-based structured logging for Utilitrack.
//
// The package provides:
//   - JSON output for production and console output for development
//   - Context-aware logging that carries request, correlation and resource fields
//   - An slog adapter for the Suture supervisor tree
//   - A Watermill logger adapter for the event bus
//   - An audit logger for admin authentication and data changes
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("path", cfg.Database.Path).Msg("Database opened")
//	logging.Ctx(ctx).Info().Int("inserted", n).Msg("Import complete")
//
// # Configuration
//
// Environment Variables:
//
//	LOG_LEVEL   - Minimum log level: trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - Output format: json, console (default: json)
//	LOG_CALLER  - Include caller file:line: true, false (default: false)
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
//
// Use structured fields instead of string formatting:
//
//	logging.Info().Str("resource", r).Int("days", n).Msg("Gap found")  // Correct
//	logging.Info().Msgf("gap of %d days for %s", n, r)                 // Avoid
package logging
