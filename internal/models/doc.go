// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

/*
Package models defines the data structures shared by the store, the analytics
engine and the HTTP API.

Model Categories:

1. Domain Models:
  - ResourceType: the measured utility (electricity "el" or water "water")
  - Reading: one daily value for a resource, unique per (date, resource)
  - Target: a consumption goal with a period type and a valid-from date

2. Ingestion Models:
  - ParseResult: readings, per-line errors and the detected resource
  - LineError: a rejected input line with its 1-based line number
  - ImportSummary: inserted/overwritten/error counts of one import batch

3. Analytics Models:
  - PeriodReport: rollup of one week, month or year
  - PatternsReport: day-of-week and month-of-year buckets plus heatmap
  - GapReport: missing-date runs
  - TargetProgress: current month against its active target

4. API Models:
  - APIResponse, APIError, Metadata: the response envelope

Missing days are represented as null values (nil pointers), never as zero.
Dates cross the JSON boundary as YYYY-MM-DD strings.
*/
package models
