// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package models

import "time"

// PeriodType is the period a target applies to.
type PeriodType string

const (
	PeriodDaily   PeriodType = "daily"
	PeriodWeekly  PeriodType = "weekly"
	PeriodMonthly PeriodType = "monthly"
	PeriodYearly  PeriodType = "yearly"
)

// AllPeriodTypes lists every target period type.
var AllPeriodTypes = []PeriodType{PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly}

// Valid reports whether p is a known period type.
func (p PeriodType) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	default:
		return false
	}
}

// Target is a consumption goal. The active target for a date is the one
// with the latest ValidFrom on or before that date.
type Target struct {
	ID           int64        `json:"id"`
	PeriodType   PeriodType   `json:"period_type"`
	ResourceType ResourceType `json:"resource_type"`
	Value        float64      `json:"value"`
	ValidFrom    string       `json:"valid_from"`
	CreatedAt    time.Time    `json:"created_at"`
}

// NewTarget holds the fields needed to create a target.
type NewTarget struct {
	PeriodType   PeriodType
	ResourceType ResourceType
	Value        float64
	ValidFrom    time.Time
}
