// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at /metrics in Prometheus text format:

	curl http://localhost:3857/metrics

# Available Metrics

Database:
  - duckdb_query_duration_seconds{operation, table}
  - duckdb_query_errors_total{operation, table, error_type}

API:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Analytics:
  - analytics_compute_duration_seconds{report}
  - analytics_compute_errors_total{report}

Import:
  - imports_total{resource}
  - import_rows_total{resource, result}
  - import_duration_seconds
  - import_last_success_timestamp

Cache:
  - cache_hits_total, cache_misses_total, cache_entries, cache_evictions_total{cache_type}

Events and WebSocket:
  - events_published_total{topic}, events_consumed_total{topic, result}
  - websocket_connections, websocket_messages_sent_total,
    websocket_messages_received_total, websocket_errors_total{error_type}

Circuit Breaker:
  - circuit_breaker_state{name} (0=closed, 1=half-open, 2=open)
  - circuit_breaker_requests_total{name, result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name, from_state, to_state}

# Usage

	start := time.Now()
	rows, err := db.QueryContext(ctx, query)
	metrics.RecordDBQuery("select", "readings", time.Since(start), err)
*/
package metrics
