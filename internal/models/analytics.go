// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package models

// PeriodRef identifies a week, month or year period.
type PeriodRef struct {
	Granularity string `json:"granularity"`
	Year        int    `json:"year"`
	Ordinal     int    `json:"ordinal,omitempty"`
	Key         string `json:"key"`
	Label       string `json:"label"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

// DayValue is one day of a period. Value is nil when the day has no reading.
type DayValue struct {
	Date    string   `json:"date"`
	Weekday string   `json:"weekday"`
	Value   *float64 `json:"value"`
}

// PeakDay is the highest present value of a period and its position.
type PeakDay struct {
	Date  string  `json:"date"`
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

// PeriodStats are the null-aware statistics of one period.
// Average is 0 when no day has data. Projection is nil unless the period is
// the current one and partially filled.
type PeriodStats struct {
	Total        float64  `json:"total"`
	Average      float64  `json:"average"`
	DaysWithData int      `json:"days_with_data"`
	TotalDays    int      `json:"total_days"`
	Peak         *PeakDay `json:"peak"`
	Projection   *float64 `json:"projection"`
}

// MonthTotal is the total of one month inside a year report.
type MonthTotal struct {
	Month int      `json:"month"`
	Label string   `json:"label"`
	Total *float64 `json:"total"`
}

// RollingAverage is the mean total of preceding periods that have data.
type RollingAverage struct {
	Window          int      `json:"window"`
	PeriodsWithData int      `json:"periods_with_data"`
	Value           *float64 `json:"value"`
}

// Comparison is the period a report is compared against.
type Comparison struct {
	Period        PeriodRef    `json:"period"`
	Custom        bool         `json:"custom"`
	Days          []DayValue   `json:"days"`
	Months        []MonthTotal `json:"months,omitempty"`
	Total         float64      `json:"total"`
	DaysWithData  int          `json:"days_with_data"`
	PercentChange float64      `json:"percent_change"`
}

// Navigation links a report to its neighbours.
type Navigation struct {
	Prev      PeriodRef `json:"prev"`
	Next      PeriodRef `json:"next"`
	IsCurrent bool      `json:"is_current"`
}

// PeriodReport is the full rollup of one period for one resource.
type PeriodReport struct {
	ResourceType  ResourceType   `json:"resource_type"`
	Unit          string         `json:"unit"`
	Period        PeriodRef      `json:"period"`
	Days          []DayValue     `json:"days"`
	Months        []MonthTotal   `json:"months,omitempty"`
	Stats         PeriodStats    `json:"stats"`
	Rolling       RollingAverage `json:"rolling_average"`
	Comparison    Comparison     `json:"comparison"`
	Target        *Target        `json:"target"`
	Navigation    Navigation     `json:"navigation"`
	ReferenceDate string         `json:"reference_date"`
}

// Bucket is one seasonal average. Value is nil when the bucket has no data.
type Bucket struct {
	Label string   `json:"label"`
	Value *float64 `json:"value"`
}

// SeasonalFilter is the resolved date filter of a bucket set.
type SeasonalFilter struct {
	Kind  string `json:"kind"`
	Year  int    `json:"year,omitempty"`
	Month int    `json:"month,omitempty"`
	Label string `json:"label"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// SeasonalBuckets are day-of-week (Monday first) and month-of-year averages.
type SeasonalBuckets struct {
	Filter      SeasonalFilter `json:"filter"`
	DayOfWeek   []Bucket       `json:"day_of_week"`
	MonthOfYear []Bucket       `json:"month_of_year"`
}

// HeatmapCell is the total of one day.
type HeatmapCell struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Heatmap holds daily totals over a window.
type Heatmap struct {
	Start  string        `json:"start"`
	End    string        `json:"end"`
	Months int           `json:"months,omitempty"`
	Cells  []HeatmapCell `json:"cells"`
}

// PatternsReport combines seasonal buckets and the heatmap.
type PatternsReport struct {
	ResourceType   ResourceType     `json:"resource_type"`
	Unit           string           `json:"unit"`
	Primary        SeasonalBuckets  `json:"primary"`
	Comparison     *SeasonalBuckets `json:"comparison,omitempty"`
	Heatmap        Heatmap          `json:"heatmap"`
	AvailableYears []int            `json:"available_years"`
	ReferenceDate  string           `json:"reference_date"`
}

// TargetProgress compares the current month with its active monthly target.
type TargetProgress struct {
	ResourceType             ResourceType `json:"resource_type"`
	Unit                     string       `json:"unit"`
	Period                   PeriodRef    `json:"period"`
	Stats                    PeriodStats  `json:"stats"`
	Target                   *Target      `json:"target"`
	PercentOfTarget          *float64     `json:"percent_of_target"`
	ProjectedPercentOfTarget *float64     `json:"projected_percent_of_target"`
	ReferenceDate            string       `json:"reference_date"`
}
