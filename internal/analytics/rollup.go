// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/utilitrack/internal/calendar"
	"github.com/tomtom215/utilitrack/internal/logging"
	"github.com/tomtom215/utilitrack/internal/metrics"
	"github.com/tomtom215/utilitrack/internal/models"
)

// Rollup computes the report of period for resource as of the reference
// date today. A nil compare selects the previous period; otherwise compare
// must share period's granularity.
func (e *Engine) Rollup(ctx context.Context, resource models.ResourceType, today time.Time, period calendar.Period, compare *calendar.Period) (report *models.PeriodReport, err error) {
	spec, ok := granularities[period.Granularity]
	if !ok || !period.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPeriod, period)
	}

	began := time.Now()
	defer func() {
		metrics.RecordAnalytics(spec.report, time.Since(began), err)
	}()

	cmpPeriod, custom := period.Shift(-1), false
	if compare != nil {
		if compare.Granularity != period.Granularity || !compare.Valid() {
			return nil, fmt.Errorf("%w: comparison %s", ErrInvalidPeriod, compare)
		}
		cmpPeriod, custom = *compare, true
	}

	today = calendar.Day(today)
	isCurrent := period.Contains(today)

	var (
		primary, comparison, preceding []models.DailyValue
		target                         *models.Target
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return e.readRange(gctx, "period readings", resource, period.Start(), period.End(), &primary)
	})
	g.Go(func() error {
		return e.readRange(gctx, "comparison readings", resource, cmpPeriod.Start(), cmpPeriod.End(), &comparison)
	})
	g.Go(func() error {
		first, last := period.Shift(-spec.rollingWindow), period.Shift(-1)
		return e.readRange(gctx, "rolling readings", resource, first.Start(), last.End(), &preceding)
	})
	g.Go(func() error {
		t, err := e.store.ActiveTarget(gctx, spec.targetPeriod, resource, today)
		if err != nil {
			return storeErr("active target", err)
		}
		target = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	days := periodDays(period, lookupOf(primary))
	stats := ComputeStats(days, isCurrent)

	cmpDays := periodDays(cmpPeriod, lookupOf(comparison))
	cmpStats := ComputeStats(cmpDays, false)

	report = &models.PeriodReport{
		ResourceType: resource,
		Unit:         resource.Unit(),
		Period:       periodRef(period),
		Days:         days,
		Stats:        stats,
		Rolling:      rollingAverage(period, spec.rollingWindow, preceding),
		Comparison: models.Comparison{
			Period:        periodRef(cmpPeriod),
			Custom:        custom,
			Days:          cmpDays,
			Total:         cmpStats.Total,
			DaysWithData:  cmpStats.DaysWithData,
			PercentChange: PercentChange(stats.Total, cmpStats.Total),
		},
		Target: target,
		Navigation: models.Navigation{
			Prev:      periodRef(period.Shift(-1)),
			Next:      periodRef(period.Shift(1)),
			IsCurrent: isCurrent,
		},
		ReferenceDate: calendar.FormatDate(today),
	}
	if period.Granularity == calendar.Year {
		report.Months = monthTotals(period.Year, primary)
		report.Comparison.Months = monthTotals(cmpPeriod.Year, comparison)
	}

	logging.CtxDebug(ctx).
		Str("period", period.Key()).
		Str("comparison", cmpPeriod.Key()).
		Int("days_with_data", stats.DaysWithData).
		Dur("duration", time.Since(began)).
		Msg("Computed period rollup")

	return report, nil
}

func (e *Engine) readRange(ctx context.Context, op string, resource models.ResourceType, start, end time.Time, into *[]models.DailyValue) error {
	values, err := e.store.ReadingsInRange(ctx, resource, start, end)
	if err != nil {
		return storeErr(op, err)
	}
	*into = values
	return nil
}
