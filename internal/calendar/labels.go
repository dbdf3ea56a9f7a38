// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package calendar

import (
	"fmt"
	"time"
)

// WeekdayLabels lists day-of-week abbreviations Monday first.
var WeekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// MonthLabels lists month abbreviations January first.
var MonthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// FormatRange renders an inclusive day range.
//
//	Feb 3–9, 2026
//	Jan 29 – Feb 4, 2026
//
// The year is taken from the end of the range.
func FormatRange(start, end time.Time) string {
	if start.Year() == end.Year() && start.Month() == end.Month() {
		return fmt.Sprintf("%s %d–%d, %d", ShortMonth(int(start.Month())), start.Day(), end.Day(), end.Year())
	}
	return fmt.Sprintf("%s %d – %s %d, %d",
		ShortMonth(int(start.Month())), start.Day(),
		ShortMonth(int(end.Month())), end.Day(), end.Year())
}

// MonthLabel renders a month as its full name and year, e.g. "February 2026".
func MonthLabel(year, month int) string {
	return fmt.Sprintf("%s %d", time.Month(month).String(), year)
}

// ShortMonth returns the three-letter abbreviation of a month (1-12).
func ShortMonth(month int) string {
	return MonthLabels[month-1]
}

// WeekdayLabel returns the three-letter abbreviation of a date's weekday.
func WeekdayLabel(t time.Time) string {
	return WeekdayLabels[MondayIndex(t.Weekday())]
}

// MondayIndex maps a weekday to its Monday-first position (Monday=0, Sunday=6).
func MondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}
