// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

/*
Package analytics turns stored daily readings into period reports.

A single Engine serves week, month and year reports. The differences between
granularities live in a small table (rolling window size and target period
type), and the calendar package resolves the days of each period.

# Missing Days

A day without a reading is missing, not zero. Totals and peaks only consider
present days, averages divide by the number of present days, and missing days
render as null. A report never zero-fills.

# Reference Date

Every request samples the engine's Clock once, converts it to the configured
location and keeps the resulting calendar day for the whole computation. That
day decides whether a period is current (and so whether it gets a projection)
and which targets are active.

# Concurrency

The primary, comparison, rolling and target reads of one rollup are issued
concurrently with errgroup. The first failing read cancels the rest and fails
the request; reads are never retried.

# Reports

  - Rollup: per-day values, stats, rolling average, comparison, target and navigation
  - Patterns: day-of-week and month-of-year averages plus a daily heatmap
  - TargetProgress: the current month against its active monthly target
  - Gaps: runs of missing days between present days
*/
package analytics
