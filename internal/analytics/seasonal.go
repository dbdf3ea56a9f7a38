// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package analytics

import (
	"context"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/utilitrack/internal/calendar"
	"github.com/tomtom215/utilitrack/internal/metrics"
	"github.com/tomtom215/utilitrack/internal/models"
)

// Seasonal filter kinds.
const (
	FilterAll   = "all"
	FilterYear  = "year"
	FilterMonth = "month"
)

// mondayFirst maps Monday-first positions to the store's Sunday=0 weekday keys.
var mondayFirst = [7]int{1, 2, 3, 4, 5, 6, 0}

// FilterRequest is a seasonal filter as requested, before validation.
type FilterRequest struct {
	Kind  string
	Year  int
	Month int
}

// ParseFilterRequest builds a FilterRequest from raw query values.
// Non-numeric components become zero and fail validation later.
func ParseFilterRequest(kind, year, month string) FilterRequest {
	return FilterRequest{
		Kind:  strings.ToLower(strings.TrimSpace(kind)),
		Year:  atoiOrZero(year),
		Month: atoiOrZero(month),
	}
}

// YearBounds is the inclusive span of years holding readings.
type YearBounds struct {
	Min int
	Max int
}

// Contains reports whether year lies within the bounds.
func (b YearBounds) Contains(year int) bool {
	return year >= b.Min && year <= b.Max
}

// Years lists every year of the bounds in ascending order.
func (b YearBounds) Years() []int {
	years := make([]int, 0, b.Max-b.Min+1)
	for y := b.Min; y <= b.Max; y++ {
		years = append(years, y)
	}
	return years
}

// yearBounds reads the span of years with data. Without data both ends are
// the reference year.
func (e *Engine) yearBounds(ctx context.Context, resource models.ResourceType, today time.Time) (YearBounds, error) {
	minYear, maxYear, ok, err := e.store.MinMaxReadingYear(ctx, resource)
	if err != nil {
		return YearBounds{}, storeErr("year bounds", err)
	}
	if !ok {
		return YearBounds{Min: today.Year(), Max: today.Year()}, nil
	}
	return YearBounds{Min: minYear, Max: maxYear}, nil
}

// ResolveFilter validates req against bounds. A year filter needs a year
// within bounds; a month filter also needs a month in 1-12. Anything else
// resolves to the unfiltered "all".
func ResolveFilter(req FilterRequest, bounds YearBounds) models.SeasonalFilter {
	switch req.Kind {
	case FilterYear:
		if bounds.Contains(req.Year) {
			p := calendar.YearPeriod(req.Year)
			return models.SeasonalFilter{
				Kind:  FilterYear,
				Year:  req.Year,
				Label: strconv.Itoa(req.Year),
				Start: calendar.FormatDate(p.Start()),
				End:   calendar.FormatDate(p.End()),
			}
		}
	case FilterMonth:
		if bounds.Contains(req.Year) && req.Month >= 1 && req.Month <= 12 {
			p := calendar.MonthPeriod(req.Year, req.Month)
			return models.SeasonalFilter{
				Kind:  FilterMonth,
				Year:  req.Year,
				Month: req.Month,
				Label: p.Label(),
				Start: calendar.FormatDate(p.Start()),
				End:   calendar.FormatDate(p.End()),
			}
		}
	}
	return models.SeasonalFilter{Kind: FilterAll, Label: "All time"}
}

// filterRange converts a resolved filter into a store range. "all" is unbounded.
func filterRange(f models.SeasonalFilter) models.DateRange {
	switch f.Kind {
	case FilterYear:
		p := calendar.YearPeriod(f.Year)
		return models.DateRange{Start: p.Start(), End: p.End()}
	case FilterMonth:
		p := calendar.MonthPeriod(f.Year, f.Month)
		return models.DateRange{Start: p.Start(), End: p.End()}
	default:
		return models.DateRange{}
	}
}

// Buckets computes day-of-week (Monday first) and month-of-year averages
// under a resolved filter. Buckets without data have a nil value.
func (e *Engine) Buckets(ctx context.Context, resource models.ResourceType, filter models.SeasonalFilter) (*models.SeasonalBuckets, error) {
	r := filterRange(filter)

	var weekdays, months map[int]float64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := e.store.WeekdayAverages(gctx, resource, r)
		if err != nil {
			return storeErr("weekday averages", err)
		}
		weekdays = v
		return nil
	})
	g.Go(func() error {
		v, err := e.store.MonthAverages(gctx, resource, r)
		if err != nil {
			return storeErr("month averages", err)
		}
		months = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &models.SeasonalBuckets{
		Filter:      filter,
		DayOfWeek:   make([]models.Bucket, 7),
		MonthOfYear: make([]models.Bucket, 12),
	}
	for i, key := range mondayFirst {
		out.DayOfWeek[i] = bucket(calendar.WeekdayLabels[i], weekdays, key)
	}
	for i := range out.MonthOfYear {
		out.MonthOfYear[i] = bucket(calendar.MonthLabels[i], months, i+1)
	}
	return out, nil
}

func bucket(label string, values map[int]float64, key int) models.Bucket {
	b := models.Bucket{Label: label}
	if v, ok := values[key]; ok {
		b.Value = &v
	}
	return b
}

// Heatmap returns daily totals under a resolved filter. For "all" it covers
// the trailing months calendar months ending at today; months <= 0 selects
// the configured default.
func (e *Engine) Heatmap(ctx context.Context, resource models.ResourceType, filter models.SeasonalFilter, months int, today time.Time) (*models.Heatmap, error) {
	hm := &models.Heatmap{}
	r := filterRange(filter)
	if r.IsZero() {
		if months <= 0 {
			months = e.heatmapMonths
		}
		r = models.DateRange{Start: today.AddDate(0, -months, 0), End: today}
		hm.Months = months
	}
	hm.Start = calendar.FormatDate(r.Start)
	hm.End = calendar.FormatDate(r.End)

	totals, err := e.store.DailyTotals(ctx, resource, r)
	if err != nil {
		return nil, storeErr("daily totals", err)
	}
	hm.Cells = make([]models.HeatmapCell, len(totals))
	for i, t := range totals {
		hm.Cells[i] = models.HeatmapCell{Date: calendar.FormatDate(t.Date), Value: t.Value}
	}
	return hm, nil
}

// PatternsQuery selects the filters of a patterns report. A nil Compare
// omits the comparison buckets.
type PatternsQuery struct {
	Filter        FilterRequest
	Compare       *FilterRequest
	HeatmapMonths int
}

// Patterns computes seasonal buckets for the primary and optional
// comparison filter together with the heatmap and the available years.
// The heatmap window ends at today.
func (e *Engine) Patterns(ctx context.Context, resource models.ResourceType, today time.Time, q PatternsQuery) (report *models.PatternsReport, err error) {
	began := time.Now()
	defer func() {
		metrics.RecordAnalytics("patterns", time.Since(began), err)
	}()

	today = calendar.Day(today)
	bounds, err := e.yearBounds(ctx, resource, today)
	if err != nil {
		return nil, err
	}

	primaryFilter := ResolveFilter(q.Filter, bounds)
	report = &models.PatternsReport{
		ResourceType:   resource,
		Unit:           resource.Unit(),
		AvailableYears: bounds.Years(),
		ReferenceDate:  calendar.FormatDate(today),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := e.Buckets(gctx, resource, primaryFilter)
		if err != nil {
			return err
		}
		report.Primary = *b
		return nil
	})
	if q.Compare != nil {
		cmpFilter := ResolveFilter(*q.Compare, bounds)
		g.Go(func() error {
			b, err := e.Buckets(gctx, resource, cmpFilter)
			if err != nil {
				return err
			}
			report.Comparison = b
			return nil
		})
	}
	g.Go(func() error {
		hm, err := e.Heatmap(gctx, resource, primaryFilter, q.HeatmapMonths, today)
		if err != nil {
			return err
		}
		report.Heatmap = *hm
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}
