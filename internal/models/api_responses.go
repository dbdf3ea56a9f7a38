// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package models

import (
	"time"
)

// APIResponse is the envelope returned by every HTTP endpoint.
//
// Status is "success" or "error". On error, Error is populated and Data is null.
//
//	{
//	  "status": "success",
//	  "data": {"total": 412.5, "days": [...]},
//	  "metadata": {"timestamp": "2026-02-06T12:00:00Z", "query_time_ms": 4}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing and cache information.
// Cached responses report QueryTimeMS as 0.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError describes a failed request.
//
// Common codes: VALIDATION_ERROR, BAD_REQUEST, DATABASE_ERROR, NOT_FOUND,
// UNAUTHORIZED, SERVICE_ERROR, RATE_LIMIT_EXCEEDED.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is returned by the health endpoint.
type HealthStatus struct {
	Status        string    `json:"status"`
	Version       string    `json:"version"`
	DatabaseOK    bool      `json:"database_ok"`
	Uptime        float64   `json:"uptime_seconds"`
	LastImport    time.Time `json:"last_import,omitempty"`
	WebSocketConn int       `json:"websocket_clients"`
}
