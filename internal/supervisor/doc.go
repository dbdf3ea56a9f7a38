// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

/*
Package supervisor provides process supervision for Utilitrack using suture v4.

# Overview

Long-running services are grouped into three layers:

	RootSupervisor ("utilitrack")
	├── DataSupervisor ("data-layer")
	│   ├── cache janitor (report cache expiry sweep)
	│   ├── duckdb-checkpoint (PeriodicService)
	│   └── import-history-gc (PeriodicService, BadgerDB only)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── websocket hub
	│   └── event processor (Watermill router)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A service that keeps failing backs off inside its own layer. The API stays
up while the event processor restarts.

# Logging

Supervisor events are routed through sutureslog into the zerolog-backed
slog handler from the logging package:

	logger := logging.NewComponentSlogLogger("supervisor")
	tree, err := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())

# Shutdown

Canceling the context passed to Serve stops every layer. Services get
ShutdownTimeout to return; UnstoppedServiceReport lists those that did not.
*/
package supervisor
