// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package analytics

import (
	"context"
	"time"

	"github.com/tomtom215/utilitrack/internal/calendar"
	"github.com/tomtom215/utilitrack/internal/models"
)

// DefaultHeatmapMonths is the trailing heatmap window used when none is configured.
const DefaultHeatmapMonths = 3

// Store is the read side of the reading and target store.
type Store interface {
	ReadingsInRange(ctx context.Context, resource models.ResourceType, start, end time.Time) ([]models.DailyValue, error)
	DistinctDates(ctx context.Context, resource models.ResourceType) ([]time.Time, error)
	ActiveTarget(ctx context.Context, periodType models.PeriodType, resource models.ResourceType, asOf time.Time) (*models.Target, error)
	MinMaxReadingYear(ctx context.Context, resource models.ResourceType) (minYear, maxYear int, ok bool, err error)
	WeekdayAverages(ctx context.Context, resource models.ResourceType, r models.DateRange) (map[int]float64, error)
	MonthAverages(ctx context.Context, resource models.ResourceType, r models.DateRange) (map[int]float64, error)
	DailyTotals(ctx context.Context, resource models.ResourceType, r models.DateRange) ([]models.DailyValue, error)
}

// Clock supplies the reference instant of a request.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
func SystemClock() Clock { return ClockFunc(time.Now) }

// FixedClock always reports t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// granularitySpec holds everything that differs between report granularities.
type granularitySpec struct {
	rollingWindow int
	targetPeriod  models.PeriodType
	report        string
}

var granularities = map[calendar.Granularity]granularitySpec{
	calendar.Week:  {rollingWindow: 4, targetPeriod: models.PeriodWeekly, report: "weekly"},
	calendar.Month: {rollingWindow: 3, targetPeriod: models.PeriodMonthly, report: "monthly"},
	calendar.Year:  {rollingWindow: 3, targetPeriod: models.PeriodYearly, report: "yearly"},
}

// RollingWindow returns the number of preceding periods averaged for g.
func RollingWindow(g calendar.Granularity) int {
	return granularities[g].rollingWindow
}

// TargetPeriodType returns the target period type matching g.
func TargetPeriodType(g calendar.Granularity) (models.PeriodType, bool) {
	spec, ok := granularities[g]
	return spec.targetPeriod, ok
}

// Config configures an Engine. Zero values select the system clock, the
// local time zone and DefaultHeatmapMonths.
type Config struct {
	Clock                Clock
	Location             *time.Location
	HeatmapDefaultMonths int
}

// Engine computes reports from a Store. It holds no per-request state and is
// safe for concurrent use.
type Engine struct {
	store         Store
	clock         Clock
	loc           *time.Location
	heatmapMonths int
}

// NewEngine creates an Engine reading from store.
func NewEngine(store Store, cfg Config) *Engine {
	e := &Engine{
		store:         store,
		clock:         cfg.Clock,
		loc:           cfg.Location,
		heatmapMonths: cfg.HeatmapDefaultMonths,
	}
	if e.clock == nil {
		e.clock = SystemClock()
	}
	if e.loc == nil {
		e.loc = time.Local
	}
	if e.heatmapMonths <= 0 {
		e.heatmapMonths = DefaultHeatmapMonths
	}
	return e
}

// Today returns the reference date: the current calendar day in the
// engine's location.
func (e *Engine) Today() time.Time {
	return calendar.Day(e.clock.Now().In(e.loc))
}

// CurrentPeriod returns the period of granularity g containing the reference date.
func (e *Engine) CurrentPeriod(g calendar.Granularity) calendar.Period {
	return calendar.PeriodContaining(g, e.Today())
}

func periodRef(p calendar.Period) models.PeriodRef {
	return models.PeriodRef{
		Granularity: string(p.Granularity),
		Year:        p.Year,
		Ordinal:     p.Ordinal,
		Key:         p.Key(),
		Label:       p.Label(),
		Start:       calendar.FormatDate(p.Start()),
		End:         calendar.FormatDate(p.End()),
	}
}
