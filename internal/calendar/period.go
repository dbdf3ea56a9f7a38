// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package calendar

import (
	"fmt"
	"strconv"
	"time"
)

// Granularity is the length of a Period.
type Granularity string

const (
	Week  Granularity = "week"
	Month Granularity = "month"
	Year  Granularity = "year"
)

// Valid reports whether g is one of the known granularities.
func (g Granularity) Valid() bool {
	switch g {
	case Week, Month, Year:
		return true
	default:
		return false
	}
}

// Period is an interval of calendar days identified by granularity and key.
// Ordinal is the ISO week for Week, the month for Month and zero for Year.
// For Week periods Year holds the ISO year.
type Period struct {
	Granularity Granularity `json:"granularity"`
	Year        int         `json:"year"`
	Ordinal     int         `json:"ordinal,omitempty"`
}

// WeekPeriod returns the ISO week period.
func WeekPeriod(isoYear, isoWeek int) Period {
	return Period{Granularity: Week, Year: isoYear, Ordinal: isoWeek}
}

// MonthPeriod returns the calendar month period.
func MonthPeriod(year, month int) Period {
	return Period{Granularity: Month, Year: year, Ordinal: month}
}

// YearPeriod returns the calendar year period.
func YearPeriod(year int) Period {
	return Period{Granularity: Year, Year: year}
}

// PeriodContaining returns the period of granularity g that contains t.
func PeriodContaining(g Granularity, t time.Time) Period {
	d := Day(t)
	switch g {
	case Week:
		y, w := d.ISOWeek()
		return WeekPeriod(y, w)
	case Month:
		return MonthPeriod(d.Year(), int(d.Month()))
	default:
		return YearPeriod(d.Year())
	}
}

// Valid reports whether the key is in range for its granularity.
func (p Period) Valid() bool {
	if p.Year < 1 || p.Year > 9999 {
		return false
	}
	switch p.Granularity {
	case Week:
		return p.Ordinal >= 1 && p.Ordinal <= WeeksInYear(p.Year)
	case Month:
		return p.Ordinal >= 1 && p.Ordinal <= 12
	case Year:
		return p.Ordinal == 0
	default:
		return false
	}
}

// Dates returns the ordered days of the period.
func (p Period) Dates() []time.Time {
	switch p.Granularity {
	case Week:
		return WeekDates(p.Year, p.Ordinal)
	case Month:
		return MonthDates(p.Year, p.Ordinal)
	default:
		return YearDates(p.Year)
	}
}

// Start returns the first day of the period.
func (p Period) Start() time.Time {
	switch p.Granularity {
	case Week:
		return MondayOf(p.Year, p.Ordinal)
	case Month:
		return Date(p.Year, time.Month(p.Ordinal), 1)
	default:
		return Date(p.Year, time.January, 1)
	}
}

// End returns the last day of the period.
func (p Period) End() time.Time {
	return p.Shift(1).Start().AddDate(0, 0, -1)
}

// Len returns the number of days in the period.
func (p Period) Len() int {
	return DaysBetween(p.Start(), p.End()) + 1
}

// Shift returns the period n steps away at the same granularity.
func (p Period) Shift(n int) Period {
	switch p.Granularity {
	case Week:
		return WeekPeriod(NavigateWeek(p.Year, p.Ordinal, n))
	case Month:
		return MonthPeriod(NavigateMonth(p.Year, p.Ordinal, n))
	default:
		return YearPeriod(p.Year + n)
	}
}

// Contains reports whether the calendar day of t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(p.Start()) && !d.After(p.End())
}

// Label renders the period for display.
func (p Period) Label() string {
	switch p.Granularity {
	case Week:
		return FormatRange(p.Start(), p.End())
	case Month:
		return MonthLabel(p.Year, p.Ordinal)
	default:
		return strconv.Itoa(p.Year)
	}
}

// Key renders a compact identifier such as 2026-W05, 2026-02 or 2026.
func (p Period) Key() string {
	switch p.Granularity {
	case Week:
		return fmt.Sprintf("%04d-W%02d", p.Year, p.Ordinal)
	case Month:
		return fmt.Sprintf("%04d-%02d", p.Year, p.Ordinal)
	default:
		return fmt.Sprintf("%04d", p.Year)
	}
}

// String implements fmt.Stringer.
func (p Period) String() string {
	return p.Key()
}
