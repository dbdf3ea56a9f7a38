// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

/*
Package config provides centralized configuration management for Utilitrack.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file (CONFIG_PATH or config.yaml), then environment variables.

# Environment Variables

Database (DatabaseConfig):
  - DUCKDB_PATH: Database file path (default: /data/utilitrack.duckdb, ":memory:" for ephemeral)
  - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 1GB)
  - DUCKDB_THREADS: Thread count (default: CPU count)
  - DB_BREAKER_FAILURES: Consecutive read failures before reads are rejected (default: 5)
  - DB_BREAKER_TIMEOUT: Open-state duration before a probe read (default: 30s)

Server (ServerConfig):
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 3860)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)
  - ENVIRONMENT: development, staging or production

Security (SecurityConfig):
  - ADMIN_USERNAME, ADMIN_PASSWORD_HASH: Basic credentials for write routes (bcrypt hash)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT: API rate limiting
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)

Analytics, Import, Events and Logging settings are documented on their structs.

# Example

	# config.yaml
	database:
	  path: /var/lib/utilitrack/utilitrack.duckdb
	analytics:
	  cache_ttl: 10m
	  heatmap_default_months: 6
	import:
	  history_path: /var/lib/utilitrack/imports

# Thread Safety

The Config struct is immutable after Load() returns and safe for concurrent reads.
*/
package config
