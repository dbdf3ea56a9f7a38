// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

/*
Package calendar provides the period arithmetic used by ingestion and analytics.

All dates handled by this package are calendar days represented as time.Time
values at midnight UTC. Using a fixed location keeps day arithmetic free of
daylight-saving surprises: adding 24 hours always lands on the next day.

# Periods

A Period is identified by a granularity and a key:

	calendar.WeekPeriod(2026, 5)   // ISO week 5 of ISO year 2026
	calendar.MonthPeriod(2026, 2)  // February 2026
	calendar.YearPeriod(2026)      // calendar year 2026

Weeks follow ISO-8601: week 1 is the week containing the year's first
Thursday, weeks start on Monday, and the ISO year of a date can differ from
its calendar year around New Year:

	year, week := calendar.ISOWeekOf(calendar.Date(2025, time.December, 29))
	// year == 2026, week == 1

# Navigation

NavigateWeek moves the Monday of a week and recomputes the ISO key, so the
week after the last ISO week of a year is always week 1 of the next year,
whether that year has 52 or 53 weeks. NavigateMonth is a plain calendar step
with year rollover.

# Labels

FormatRange renders "Feb 3–9, 2026" when both ends share a month and
"Jan 29 – Feb 4, 2026" otherwise. MonthLabel, ShortMonth and WeekdayLabel
provide the remaining presentation strings.

Inputs are assumed well formed. Callers validate user-provided years, weeks
and months (see Period.Valid) before handing them to this package.
*/
package calendar
