// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

/*
Package websocket pushes live update notifications to connected dashboards.

A Hub owns the set of connected clients and fans out typed messages. Each
Client runs a read pump (answers application pings, tracks pong deadlines)
and a write pump (drains its send queue, sends protocol pings).

	┌──────────┐
	│   Hub    │ ← Broadcasts to all clients
	└────┬─────┘
	     │
	┌────┴─────┬─────────┐
	│ Client1  │ Client2 │ ...
	└──────────┴─────────┘

Message Types:

  - readings_imported: an import changed stored readings
  - targets_changed: a target was created or deleted
  - ping / pong: application-level keepalive

The hub runs as a suture service via Serve. Clients whose send queue is full
are dropped instead of blocking the broadcast loop.
*/
package websocket
