// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

/*
Package main is the entry point for the Utilitrack server.

Utilitrack stores one reading per day for each tracked resource (electricity
in kWh, water in litres) and serves weekly, monthly, yearly and seasonal
reports over a JSON API. Readings arrive as CSV or TSV exports uploaded by an
administrator or pasted as text.

# Application Architecture

Long-running components run under a Suture v4 supervisor tree:

	RootSupervisor ("utilitrack")
	├── DataSupervisor ("data-layer")
	│   ├── Analytics cache janitor
	│   ├── DuckDB checkpoint (periodic)
	│   └── Import history GC (periodic, Badger only)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── WebSocket Hub
	│   └── Event processor (Watermill)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config file and environment
 2. Logging: zerolog with JSON or console output
 3. Database: DuckDB with a circuit breaker around reads
 4. Analytics engine and response cache
 5. Event processor and WebSocket hub
 6. Importer with Badger or in-memory import history
 7. HTTP Server: Chi router with the middleware stack

# Configuration

Settings are read from built-in defaults, then config.yaml (or CONFIG_PATH),
then environment variables. Common variables:

	DUCKDB_PATH              database file (default /data/utilitrack.duckdb)
	HTTP_PORT                listen port (default 3860)
	ADMIN_USERNAME           enables basic auth on write routes together with
	ADMIN_PASSWORD_HASH      a bcrypt hash
	ANALYTICS_TIMEZONE       IANA zone that defines "today"
	IMPORT_HISTORY_PATH      Badger directory for import history
	LOG_LEVEL, LOG_FORMAT    logging

# Shutdown

SIGINT or SIGTERM cancels the root context. The supervisor stops the HTTP
server first with a bounded grace period, then the messaging and data layers.
The database, history store and event processor are closed last.
*/
package main
