// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/utilitrack/internal/middleware"
	"github.com/tomtom215/utilitrack/internal/models"
)

// ResourceSelection describes the selected resource and the alternatives.
type ResourceSelection struct {
	Selected  models.ResourceInfo   `json:"selected"`
	Available []models.ResourceInfo `json:"available"`
	Stats     *models.ReadingStats  `json:"stats,omitempty"`
}

func (h *Handler) resourceSelection(r *http.Request, resource models.ResourceType) *ResourceSelection {
	sel := &ResourceSelection{
		Selected:  models.InfoFor(resource),
		Available: make([]models.ResourceInfo, 0, len(models.AllResources)),
	}
	for _, rt := range models.AllResources {
		sel.Available = append(sel.Available, models.InfoFor(rt))
	}
	if h.db != nil {
		// Stats are informational; a failed read still returns the selection.
		if stats, err := h.db.ReadingStats(r.Context(), resource); err == nil {
			sel.Stats = stats
		}
	}
	return sel
}

// GetResource returns the selected resource.
func (h *Handler) GetResource(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	resource := middleware.ResourceFromContext(r.Context())
	respondSuccess(w, http.StatusOK, h.resourceSelection(r, resource), start)
}

// SelectResource switches the selected resource and persists it in the
// resource cookie.
func (h *Handler) SelectResource(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req SelectResourceRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	resource, _ := models.ParseResourceType(req.Resource)
	middleware.SetResourceCookie(w, resource, h.secureCookies())
	respondSuccess(w, http.StatusOK, h.resourceSelection(r, resource), start)
}
