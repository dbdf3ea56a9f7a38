// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/utilitrack/internal/models"
)

// Health reports database connectivity, uptime, the last import and the
// number of websocket clients. A failed database ping reports "degraded"
// with status 503.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbOK := h.db != nil && h.db.Ping(r.Context()) == nil

	health := models.HealthStatus{
		Status:     "healthy",
		Version:    Version,
		DatabaseOK: dbOK,
		Uptime:     time.Since(h.startTime).Seconds(),
	}
	if h.wsHub != nil {
		health.WebSocketConn = h.wsHub.GetClientCount()
	}
	if h.importer != nil && h.importer.History() != nil {
		if last, err := h.importer.History().List(r.Context(), 1); err == nil && len(last) > 0 {
			health.LastImport = last[0].CompletedAt
		}
	}

	status := http.StatusOK
	if !dbOK {
		health.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, status, &models.APIResponse{
		Status:   "success",
		Data:     health,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
