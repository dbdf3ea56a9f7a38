// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package calendar

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"time"
)

// DateLayout is the canonical YYYY-MM-DD date format.
const DateLayout = "2006-01-02"

// TimestampLayout is the canonical at-rest reading timestamp (local midnight).
const TimestampLayout = "2006-01-02T15:04:05"

// ErrInvalidDate is returned when a string is not a real YYYY-MM-DD date.
var ErrInvalidDate = errors.New("invalid date")

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Date returns midnight UTC of the given calendar day.
// Out-of-range days and months normalize the same way time.Date does.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Day strips the clock from t, keeping the calendar day as seen in t's location.
func Day(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// IsDateString reports whether s has the YYYY-MM-DD shape.
// It does not check that the day exists; use ParseDate for that.
func IsDateString(s string) bool {
	return isoDatePattern.MatchString(s)
}

// ParseDate parses a strict YYYY-MM-DD string into a calendar day.
func ParseDate(s string) (time.Time, error) {
	if !IsDateString(s) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate renders a calendar day as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatTimestamp renders the canonical reading timestamp for a day.
func FormatTimestamp(t time.Time) string {
	return Day(t).Format(TimestampLayout)
}

// ISOWeekOf returns the ISO-8601 year and week of a date.
func ISOWeekOf(t time.Time) (isoYear, isoWeek int) {
	return Day(t).ISOWeek()
}

// MondayOf returns the Monday that starts the given ISO week.
func MondayOf(isoYear, isoWeek int) time.Time {
	// January 4th is always in week 1.
	jan4 := Date(isoYear, time.January, 4)
	offset := (int(jan4.Weekday()) + 6) % 7
	week1 := jan4.AddDate(0, 0, -offset)
	return week1.AddDate(0, 0, (isoWeek-1)*7)
}

// WeekDates returns the seven days of an ISO week, Monday through Sunday.
func WeekDates(isoYear, isoWeek int) []time.Time {
	return consecutiveDays(MondayOf(isoYear, isoWeek), 7)
}

// WeeksInYear returns 52 or 53, the number of ISO weeks in an ISO year.
func WeeksInYear(isoYear int) int {
	// December 28th is always in the last week.
	_, week := Date(isoYear, time.December, 28).ISOWeek()
	return week
}

// DaysInMonth returns the number of days in a calendar month.
func DaysInMonth(year, month int) int {
	return Date(year, time.Month(month)+1, 0).Day()
}

// MonthDates returns every day of a calendar month in order.
func MonthDates(year, month int) []time.Time {
	return consecutiveDays(Date(year, time.Month(month), 1), DaysInMonth(year, month))
}

// YearDates returns every day of a calendar year in order.
func YearDates(year int) []time.Time {
	start := Date(year, time.January, 1)
	end := Date(year+1, time.January, 1)
	return consecutiveDays(start, DaysBetween(start, end))
}

// NavigateWeek moves n weeks from the given ISO week.
func NavigateWeek(isoYear, isoWeek, n int) (int, int) {
	return MondayOf(isoYear, isoWeek).AddDate(0, 0, 7*n).ISOWeek()
}

// NavigateMonth moves n months from the given calendar month.
func NavigateMonth(year, month, n int) (int, int) {
	idx := year*12 + (month - 1) + n
	y := floorDiv(idx, 12)
	return y, idx - y*12 + 1
}

// DaysBetween returns the whole number of days from a to b.
// Both values are anchored at noon UTC of their calendar day, so the result
// is exact regardless of the locations a and b carry.
func DaysBetween(a, b time.Time) int {
	an := time.Date(a.Year(), a.Month(), a.Day(), 12, 0, 0, 0, time.UTC)
	bn := time.Date(b.Year(), b.Month(), b.Day(), 12, 0, 0, 0, time.UTC)
	return int(math.Round(bn.Sub(an).Hours() / 24))
}

func consecutiveDays(start time.Time, n int) []time.Time {
	days := make([]time.Time, n)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
