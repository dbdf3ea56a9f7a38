// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package analytics

import (
	"github.com/tomtom215/utilitrack/internal/calendar"
	"github.com/tomtom215/utilitrack/internal/models"
)

// dayLookup maps YYYY-MM-DD to a stored value.
type dayLookup map[string]float64

func lookupOf(values []models.DailyValue) dayLookup {
	lookup := make(dayLookup, len(values))
	for _, v := range values {
		lookup[calendar.FormatDate(v.Date)] = v.Value
	}
	return lookup
}

// periodDays lays the lookup over every day of p. Days absent from the
// lookup keep a nil value.
func periodDays(p calendar.Period, lookup dayLookup) []models.DayValue {
	dates := p.Dates()
	days := make([]models.DayValue, len(dates))
	for i, d := range dates {
		key := calendar.FormatDate(d)
		days[i] = models.DayValue{Date: key, Weekday: calendar.WeekdayLabel(d)}
		if v, ok := lookup[key]; ok {
			days[i].Value = &v
		}
	}
	return days
}

// ComputeStats derives the null-aware statistics of a day sequence. The
// projection is only set when isCurrent is true and some, but not all, days
// have data.
func ComputeStats(days []models.DayValue, isCurrent bool) models.PeriodStats {
	stats := models.PeriodStats{TotalDays: len(days)}
	for i, d := range days {
		if d.Value == nil {
			continue
		}
		v := *d.Value
		stats.Total += v
		stats.DaysWithData++
		// strict comparison keeps the first of equal peaks
		if stats.Peak == nil || v > stats.Peak.Value {
			stats.Peak = &models.PeakDay{Date: d.Date, Index: i, Value: v}
		}
	}
	if stats.DaysWithData > 0 {
		stats.Average = stats.Total / float64(stats.DaysWithData)
	}
	if isCurrent && stats.DaysWithData > 0 && stats.DaysWithData < stats.TotalDays {
		projection := stats.Total / float64(stats.DaysWithData) * float64(stats.TotalDays)
		stats.Projection = &projection
	}
	return stats
}

// PercentChange returns the change from previous to current in percent, or
// 0 when previous is 0.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// rollingAverage averages the totals of the window periods preceding p.
// Periods without any reading count neither towards the sum nor the divisor.
func rollingAverage(p calendar.Period, window int, readings []models.DailyValue) models.RollingAverage {
	ra := models.RollingAverage{Window: window}
	sum := 0.0
	for i := 1; i <= window; i++ {
		prev := p.Shift(-i)
		total, present := 0.0, 0
		for _, r := range readings {
			if prev.Contains(r.Date) {
				total += r.Value
				present++
			}
		}
		if present == 0 {
			continue
		}
		sum += total
		ra.PeriodsWithData++
	}
	if ra.PeriodsWithData > 0 {
		avg := sum / float64(ra.PeriodsWithData)
		ra.Value = &avg
	}
	return ra
}

// monthTotals sums the readings of year per calendar month. Months without
// readings keep a nil total.
func monthTotals(year int, readings []models.DailyValue) []models.MonthTotal {
	var sums [12]*float64
	for _, r := range readings {
		if r.Date.Year() != year {
			continue
		}
		idx := int(r.Date.Month()) - 1
		if sums[idx] == nil {
			sums[idx] = new(float64)
		}
		*sums[idx] += r.Value
	}
	out := make([]models.MonthTotal, 12)
	for i := range out {
		out[i] = models.MonthTotal{
			Month: i + 1,
			Label: calendar.MonthLabels[i],
			Total: sums[i],
		}
	}
	return out
}
