// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package models

import (
	"time"

	"github.com/goccy/go-json"
)

// Reading is one daily consumption value.
// Date is a calendar day at midnight UTC.
type Reading struct {
	Date         time.Time    `json:"-"`
	Value        float64      `json:"value"`
	ResourceType ResourceType `json:"resource_type"`
}

// Timestamp returns the canonical at-rest form, YYYY-MM-DDT00:00:00.
func (r Reading) Timestamp() string {
	return r.Date.Format("2006-01-02") + "T00:00:00"
}

// MarshalJSON renders the date both as a plain day and as the canonical timestamp.
func (r Reading) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date         string       `json:"date"`
		Timestamp    string       `json:"timestamp"`
		Value        float64      `json:"value"`
		ResourceType ResourceType `json:"resource_type"`
	}{
		Date:         r.Date.Format("2006-01-02"),
		Timestamp:    r.Timestamp(),
		Value:        r.Value,
		ResourceType: r.ResourceType,
	})
}

// DailyValue is a stored reading without its resource, as returned by range reads.
type DailyValue struct {
	Date  time.Time
	Value float64
}

// LineError is a rejected input line. Line is 1-based.
type LineError struct {
	Line    int    `json:"line"`
	Message string `json:"error"`
}

// ParseResult is the output of one normalization run.
type ParseResult struct {
	Readings     []Reading    `json:"readings"`
	Errors       []LineError  `json:"errors"`
	ResourceType ResourceType `json:"resource_type"`
}

// ImportSummary reports the outcome of one import batch.
type ImportSummary struct {
	ID           string       `json:"id"`
	Source       string       `json:"source"`
	ResourceType ResourceType `json:"resource_type"`
	Parsed       int          `json:"parsed"`
	Inserted     int          `json:"inserted"`
	Overwritten  int          `json:"overwritten"`
	Failed       int          `json:"failed"`
	ErrorCount   int          `json:"error_count"`
	LineErrors   []LineError  `json:"line_errors,omitempty"`
	From         string       `json:"from,omitempty"`
	To           string       `json:"to,omitempty"`
	StartedAt    time.Time    `json:"started_at"`
	CompletedAt  time.Time    `json:"completed_at"`
	DurationMS   int64        `json:"duration_ms"`
}

// DateGap is a run of consecutive missing days between two present days.
type DateGap struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}

// GapReport lists the gaps of one resource.
type GapReport struct {
	ResourceType     ResourceType `json:"resource_type"`
	Gaps             []DateGap    `json:"gaps"`
	TotalMissingDays int          `json:"total_missing_days"`
	DatesWithData    int          `json:"dates_with_data"`
	FirstDate        string       `json:"first_date,omitempty"`
	LastDate         string       `json:"last_date,omitempty"`
}

// ReadingStats summarizes stored readings of one resource.
type ReadingStats struct {
	ResourceType ResourceType `json:"resource_type"`
	Count        int64        `json:"count"`
	FirstDate    string       `json:"first_date,omitempty"`
	LastDate     string       `json:"last_date,omitempty"`
	Total        float64      `json:"total"`
}

// DateRange bounds a query by inclusive calendar days. A zero range is unbounded.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether the range is unbounded.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}
