// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

/*
Package services adapts application components to suture's Serve pattern.

	type Service interface {
	    Serve(ctx context.Context) error
	}

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts ListenAndServe to Serve
  - Configurable shutdown timeout for draining connections

Periodic Task (PeriodicService):
  - Runs a maintenance task on a fixed interval
  - Used for DuckDB checkpoints and import history value-log GC
  - Task errors are logged and counted; only a canceled context stops it

Components that already expose Serve(ctx) error, such as the websocket hub,
the report cache janitor and the event processor, are added to the tree
directly without a wrapper.
*/
package services
