// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/utilitrack/internal/calendar"
	"github.com/tomtom215/utilitrack/internal/database"
	"github.com/tomtom215/utilitrack/internal/eventprocessor"
	"github.com/tomtom215/utilitrack/internal/logging"
	"github.com/tomtom215/utilitrack/internal/middleware"
	"github.com/tomtom215/utilitrack/internal/models"
)

// ListTargets returns every target of the selected resource.
func (h *Handler) ListTargets(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		respondError(w, http.StatusServiceUnavailable, CodeService, "Database not available", nil)
		return
	}
	start := time.Now()
	resource := middleware.ResourceFromContext(r.Context())

	targets, err := h.db.ListTargets(r.Context(), resource)
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeDatabase, "Failed to list targets", err)
		return
	}
	respondSuccess(w, http.StatusOK, targets, start)
}

// ActiveTarget returns the target of ?period= in force on the reference
// date, or null when none applies.
func (h *Handler) ActiveTarget(w http.ResponseWriter, r *http.Request) {
	if h.db == nil || h.engine == nil {
		respondError(w, http.StatusServiceUnavailable, CodeService, "Database not available", nil)
		return
	}
	start := time.Now()

	req := ActiveTargetRequest{Period: r.URL.Query().Get("period")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	resource := middleware.ResourceFromContext(r.Context())
	target, err := h.db.ActiveTarget(r.Context(), models.PeriodType(req.Period), resource, h.engine.Today())
	if err != nil {
		respondStoreError(w, "Failed to look up active target", err)
		return
	}
	respondSuccess(w, http.StatusOK, target, start)
}

// CreateTarget stores a new target and announces the change.
func (h *Handler) CreateTarget(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		respondError(w, http.StatusServiceUnavailable, CodeService, "Database not available", nil)
		return
	}
	start := time.Now()

	var req CreateTargetRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	resource := middleware.ResourceFromContext(r.Context())
	if req.ResourceType != "" {
		resource, _ = models.ParseResourceType(req.ResourceType)
	}
	validFrom, err := calendar.ParseDate(req.ValidFrom)
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeValidation, "valid_from must be a date in YYYY-MM-DD format", nil)
		return
	}

	target, err := h.db.CreateTarget(r.Context(), models.NewTarget{
		PeriodType:   models.PeriodType(req.PeriodType),
		ResourceType: resource,
		Value:        req.Value,
		ValidFrom:    validFrom,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeDatabase, "Failed to create target", err)
		return
	}

	h.announceTargetChange(r, eventprocessor.TargetCreated, target)
	respondSuccess(w, http.StatusCreated, target, start)
}

// DeleteTarget removes the target {id}.
func (h *Handler) DeleteTarget(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		respondError(w, http.StatusServiceUnavailable, CodeService, "Database not available", nil)
		return
	}
	start := time.Now()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, CodeBadRequest, "Invalid target id", nil)
		return
	}

	// Read first so the change event names the target's resource.
	target, err := h.db.GetTarget(r.Context(), id)
	if err == nil {
		err = h.db.DeleteTarget(r.Context(), id)
	}
	if errors.Is(err, database.ErrTargetNotFound) {
		respondError(w, http.StatusNotFound, CodeNotFound, "Target not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeDatabase, "Failed to delete target", err)
		return
	}

	h.announceTargetChange(r, eventprocessor.TargetDeleted, target)
	respondSuccess(w, http.StatusOK, map[string]any{"deleted": id}, start)
}

// announceTargetChange audits the change and publishes targets.changed.
// Publishing failures are logged; the change itself has been stored.
func (h *Handler) announceTargetChange(r *http.Request, action string, target *models.Target) {
	h.audit.LogChange("target_"+action, adminFromContext(r.Context()), r.RemoteAddr, map[string]string{
		"target_id":   strconv.FormatInt(target.ID, 10),
		"period_type": string(target.PeriodType),
		"resource":    string(target.ResourceType),
		"valid_from":  target.ValidFrom,
	})

	if h.events == nil {
		return
	}
	if err := h.events.PublishTargetsChanged(r.Context(), action, target); err != nil {
		logging.CtxWarn(r.Context()).Err(err).Int64("target_id", target.ID).Msg("Failed to publish target change")
	}
}

// respondStoreError reports a failed store read.
func respondStoreError(w http.ResponseWriter, message string, err error) {
	if errors.Is(err, database.ErrStoreUnavailable) {
		w.Header().Set("Retry-After", "30")
		respondError(w, http.StatusServiceUnavailable, CodeService, "Store temporarily unavailable", err)
		return
	}
	respondError(w, http.StatusInternalServerError, CodeDatabase, message, err)
}
