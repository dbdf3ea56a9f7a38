// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/utilitrack/internal/analytics"
	"github.com/tomtom215/utilitrack/internal/calendar"
	"github.com/tomtom215/utilitrack/internal/models"
)

// maxHeatmapMonths caps the months query parameter of the patterns report.
// Larger values are clamped; zero or negative values select the default.
const maxHeatmapMonths = 24

// periodParams is the cache identity of a period report.
type periodParams struct {
	Period  string `json:"period"`
	Compare string `json:"compare,omitempty"`
}

// periodQuery names the query parameters navigating one granularity.
type periodQuery struct {
	granularity  calendar.Granularity
	report       string
	ordinal      string
	compareOrder string
}

var (
	weeklyQuery  = periodQuery{calendar.Week, "weekly", "week", "compare_week"}
	monthlyQuery = periodQuery{calendar.Month, "monthly", "month", "compare_month"}
	yearlyQuery  = periodQuery{calendar.Year, "yearly", "", ""}
)

// AnalyticsWeekly returns the report of an ISO week.
// Invalid or missing year/week select the current week.
func (h *Handler) AnalyticsWeekly(w http.ResponseWriter, r *http.Request) {
	h.servePeriodReport(w, r, weeklyQuery)
}

// AnalyticsMonthly returns the report of a calendar month.
func (h *Handler) AnalyticsMonthly(w http.ResponseWriter, r *http.Request) {
	h.servePeriodReport(w, r, monthlyQuery)
}

// AnalyticsYearly returns the report of a calendar year with month totals.
func (h *Handler) AnalyticsYearly(w http.ResponseWriter, r *http.Request) {
	h.servePeriodReport(w, r, yearlyQuery)
}

func (h *Handler) servePeriodReport(w http.ResponseWriter, r *http.Request, pq periodQuery) {
	if h.engine == nil {
		respondError(w, http.StatusServiceUnavailable, CodeService, "Analytics engine not available", nil)
		return
	}

	q := r.URL.Query()
	var ordinal, compareOrdinal string
	if pq.ordinal != "" {
		ordinal = q.Get(pq.ordinal)
		compareOrdinal = q.Get(pq.compareOrder)
	}

	year := q.Get("year")
	compare := analytics.ResolveComparison(pq.granularity, q.Get("compare_year"), compareOrdinal)

	NewAnalyticsQueryExecutor(h).Execute(w, r, pq.report, func(today time.Time) (any, ReportFunc) {
		period := analytics.ResolvePeriod(pq.granularity, year, ordinal, today)
		params := periodParams{Period: period.Key()}
		if compare != nil {
			params.Compare = compare.Key()
		}
		return params, func(ctx context.Context, resource models.ResourceType, today time.Time) (any, error) {
			return h.engine.Rollup(ctx, resource, today, period, compare)
		}
	})
}

// patternsParams is the cache identity of a patterns report.
type patternsParams struct {
	Filter  analytics.FilterRequest  `json:"filter"`
	Compare *analytics.FilterRequest `json:"compare,omitempty"`
	Months  int                      `json:"months"`
}

// AnalyticsPatterns returns day-of-week and month-of-year buckets for the
// filter in period/year/month, an optional comparison filter in
// compare_period/compare_year/compare_month, and the daily heatmap over the
// trailing months.
func (h *Handler) AnalyticsPatterns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := patternsParams{
		Filter: analytics.ParseFilterRequest(q.Get("period"), q.Get("year"), q.Get("month")),
		Months: getIntParam(r, "months", 0),
	}
	switch {
	case params.Months < 0:
		params.Months = 0
	case params.Months > maxHeatmapMonths:
		params.Months = maxHeatmapMonths
	}
	if q.Get("compare_period") != "" {
		cmp := analytics.ParseFilterRequest(q.Get("compare_period"), q.Get("compare_year"), q.Get("compare_month"))
		params.Compare = &cmp
	}

	NewAnalyticsQueryExecutor(h).Execute(w, r, "patterns", staticPlan(params,
		func(ctx context.Context, resource models.ResourceType, today time.Time) (any, error) {
			return h.engine.Patterns(ctx, resource, today, analytics.PatternsQuery{
				Filter:        params.Filter,
				Compare:       params.Compare,
				HeatmapMonths: params.Months,
			})
		}))
}

// AnalyticsGaps returns the runs of missing days of the selected resource.
func (h *Handler) AnalyticsGaps(w http.ResponseWriter, r *http.Request) {
	NewAnalyticsQueryExecutor(h).Execute(w, r, "gaps", staticPlan(struct{}{},
		func(ctx context.Context, resource models.ResourceType, _ time.Time) (any, error) {
			return h.engine.Gaps(ctx, resource)
		}))
}

// AnalyticsProgress returns the current month measured against the active
// monthly target.
func (h *Handler) AnalyticsProgress(w http.ResponseWriter, r *http.Request) {
	NewAnalyticsQueryExecutor(h).Execute(w, r, "progress", staticPlan(struct{}{},
		func(ctx context.Context, resource models.ResourceType, today time.Time) (any, error) {
			return h.engine.TargetProgress(ctx, resource, today)
		}))
}
