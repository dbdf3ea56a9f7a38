// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/utilitrack/internal/analytics"
	"github.com/tomtom215/utilitrack/internal/cache"
	"github.com/tomtom215/utilitrack/internal/calendar"
	"github.com/tomtom215/utilitrack/internal/database"
	"github.com/tomtom215/utilitrack/internal/logging"
	"github.com/tomtom215/utilitrack/internal/middleware"
	"github.com/tomtom215/utilitrack/internal/models"
)

// AnalyticsQueryExecutor runs report handlers cache-first:
//
//  1. Resolve the selected resource from the request context
//  2. Look up (resource, report, params, reference date) in the cache
//  3. Compute the report on a miss and cache it
//  4. Respond with query time and cached status
//
// The reference date is sampled once per request. The same value selects
// default periods, forms the cache key and drives the computation, so a
// request spanning midnight still produces one consistent report. It is part
// of the key so a cached report never outlives the day it was computed for.
type AnalyticsQueryExecutor struct {
	handler *Handler
}

// NewAnalyticsQueryExecutor creates an executor for h.
func NewAnalyticsQueryExecutor(h *Handler) *AnalyticsQueryExecutor {
	return &AnalyticsQueryExecutor{handler: h}
}

// ReportFunc computes one report for resource as of the reference date today.
type ReportFunc func(ctx context.Context, resource models.ResourceType, today time.Time) (any, error)

// ReportPlan resolves the cache identity and the computation of a report for
// the reference date of one request.
type ReportPlan func(today time.Time) (params any, fn ReportFunc)

// staticPlan serves reports whose parameters do not depend on the date.
func staticPlan(params any, fn ReportFunc) ReportPlan {
	return func(time.Time) (any, ReportFunc) { return params, fn }
}

// reportKey identifies a cached report within a resource.
type reportKey struct {
	Params        any    `json:"params"`
	ReferenceDate string `json:"reference_date"`
}

// Execute serves report for the selected resource.
func (e *AnalyticsQueryExecutor) Execute(w http.ResponseWriter, r *http.Request, report string, plan ReportPlan) {
	h := e.handler
	if h.engine == nil {
		respondError(w, http.StatusServiceUnavailable, CodeService, "Analytics engine not available", nil)
		return
	}

	start := time.Now()
	resource := middleware.ResourceFromContext(r.Context())
	today := h.engine.Today()
	params, fn := plan(today)
	key := cache.ResourceKey(string(resource), report, reportKey{
		Params:        params,
		ReferenceDate: calendar.FormatDate(today),
	})

	if h.cache != nil {
		if cached, found := h.cache.Get(key); found {
			respondJSON(w, http.StatusOK, &models.APIResponse{
				Status: "success",
				Data:   cached,
				Metadata: models.Metadata{
					Timestamp: time.Now(),
					Cached:    true,
				},
			})
			return
		}
	}

	result, err := fn(r.Context(), resource, today)
	if err != nil {
		respondReportError(w, r, report, err)
		return
	}

	if h.cache != nil {
		h.cache.Set(key, result)
	}
	respondSuccess(w, http.StatusOK, result, start)
}

// respondReportError maps engine errors to HTTP responses. Store and
// internal failures are logged with the request's context fields.
func respondReportError(w http.ResponseWriter, r *http.Request, report string, err error) {
	if !errors.Is(err, analytics.ErrInvalidPeriod) && !errors.Is(err, context.Canceled) {
		logging.CtxError(r.Context()).
			Str("report", report).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("Report failed")
	}

	switch {
	case errors.Is(err, database.ErrStoreUnavailable):
		w.Header().Set("Retry-After", "30")
		respondError(w, http.StatusServiceUnavailable, CodeService, "Store temporarily unavailable", nil)
	case errors.Is(err, analytics.ErrInvalidPeriod):
		respondError(w, http.StatusBadRequest, CodeBadRequest, "Invalid period", nil)
	case errors.Is(err, analytics.ErrStoreUnavailable):
		respondError(w, http.StatusInternalServerError, CodeDatabase, "Failed to compute "+report+" report", nil)
	case errors.Is(err, context.Canceled):
		respondError(w, http.StatusServiceUnavailable, CodeService, "Request canceled", nil)
	default:
		respondError(w, http.StatusInternalServerError, CodeInternal, "Failed to compute "+report+" report", nil)
	}
}
