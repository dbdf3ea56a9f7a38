// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package analytics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/utilitrack/internal/calendar"
	"github.com/tomtom215/utilitrack/internal/gaps"
	"github.com/tomtom215/utilitrack/internal/metrics"
	"github.com/tomtom215/utilitrack/internal/models"
)

// TargetProgress compares the month containing today with the monthly
// target active on today. Percentages are nil without a positive target.
func (e *Engine) TargetProgress(ctx context.Context, resource models.ResourceType, today time.Time) (progress *models.TargetProgress, err error) {
	began := time.Now()
	defer func() {
		metrics.RecordAnalytics("progress", time.Since(began), err)
	}()

	today = calendar.Day(today)
	period := calendar.PeriodContaining(calendar.Month, today)

	var (
		readings []models.DailyValue
		target   *models.Target
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return e.readRange(gctx, "month readings", resource, period.Start(), period.End(), &readings)
	})
	g.Go(func() error {
		t, err := e.store.ActiveTarget(gctx, models.PeriodMonthly, resource, today)
		if err != nil {
			return storeErr("active target", err)
		}
		target = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := ComputeStats(periodDays(period, lookupOf(readings)), true)
	progress = &models.TargetProgress{
		ResourceType:  resource,
		Unit:          resource.Unit(),
		Period:        periodRef(period),
		Stats:         stats,
		Target:        target,
		ReferenceDate: calendar.FormatDate(today),
	}
	if target != nil && target.Value > 0 {
		pct := stats.Total / target.Value * 100
		progress.PercentOfTarget = &pct
		if stats.Projection != nil {
			projected := *stats.Projection / target.Value * 100
			progress.ProjectedPercentOfTarget = &projected
		}
	}
	return progress, nil
}

// Gaps reports the runs of missing days of resource.
func (e *Engine) Gaps(ctx context.Context, resource models.ResourceType) (report *models.GapReport, err error) {
	began := time.Now()
	defer func() {
		metrics.RecordAnalytics("gaps", time.Since(began), err)
	}()

	dates, err := e.store.DistinctDates(ctx, resource)
	if err != nil {
		return nil, storeErr("distinct dates", err)
	}
	r := gaps.Report(resource, dates)
	return &r, nil
}
