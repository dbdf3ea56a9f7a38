// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

// Package gaps finds runs of missing calendar days in a sorted date sequence.
package gaps

import (
	"time"

	"github.com/tomtom215/utilitrack/internal/calendar"
	"github.com/tomtom215/utilitrack/internal/models"
)

// FindDateGaps returns one gap for every adjacent pair of dates that are
// more than one day apart. The input must already be sorted ascending; it is
// neither sorted nor deduplicated here. Fewer than two dates yield an empty,
// non-nil slice.
func FindDateGaps(dates []time.Time) []models.DateGap {
	result := make([]models.DateGap, 0)
	for i := 1; i < len(dates); i++ {
		prev, cur := dates[i-1], dates[i]
		diff := calendar.DaysBetween(prev, cur)
		if diff <= 1 {
			continue
		}
		start := calendar.Day(prev).AddDate(0, 0, 1)
		end := calendar.Day(cur).AddDate(0, 0, -1)
		result = append(result, models.DateGap{
			Start: calendar.FormatDate(start),
			End:   calendar.FormatDate(end),
			Days:  diff - 1,
		})
	}
	return result
}

// FindDateStringGaps is FindDateGaps over YYYY-MM-DD strings. Unparseable
// entries are skipped.
func FindDateStringGaps(dates []string) []models.DateGap {
	parsed := make([]time.Time, 0, len(dates))
	for _, s := range dates {
		t, err := calendar.ParseDate(s)
		if err != nil {
			continue
		}
		parsed = append(parsed, t)
	}
	return FindDateGaps(parsed)
}

// TotalMissingDays sums the days of all gaps.
func TotalMissingDays(gaps []models.DateGap) int {
	total := 0
	for _, g := range gaps {
		total += g.Days
	}
	return total
}

// Report builds a GapReport for one resource from its sorted distinct dates.
func Report(resource models.ResourceType, dates []time.Time) models.GapReport {
	found := FindDateGaps(dates)
	report := models.GapReport{
		ResourceType:     resource,
		Gaps:             found,
		TotalMissingDays: TotalMissingDays(found),
		DatesWithData:    len(dates),
	}
	if len(dates) > 0 {
		report.FirstDate = calendar.FormatDate(dates[0])
		report.LastDate = calendar.FormatDate(dates[len(dates)-1])
	}
	return report
}
