// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package gaps

import (
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/utilitrack/internal/models"
)

func TestFindDateStringGaps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		dates []string
		want  []models.DateGap
	}{
		{
			name:  "empty input",
			dates: []string{},
			want:  []models.DateGap{},
		},
		{
			name:  "single date",
			dates: []string{"2026-01-01"},
			want:  []models.DateGap{},
		},
		{
			name:  "two missing days",
			dates: []string{"2026-01-01", "2026-01-04"},
			want:  []models.DateGap{{Start: "2026-01-02", End: "2026-01-03", Days: 2}},
		},
		{
			name:  "consecutive days",
			dates: []string{"2026-01-01", "2026-01-02", "2026-01-03"},
			want:  []models.DateGap{},
		},
		{
			name:  "year boundary",
			dates: []string{"2025-12-31", "2026-01-02"},
			want:  []models.DateGap{{Start: "2026-01-01", End: "2026-01-01", Days: 1}},
		},
		{
			name:  "leap day",
			dates: []string{"2024-02-27", "2024-03-01"},
			want:  []models.DateGap{{Start: "2024-02-28", End: "2024-02-29", Days: 2}},
		},
		{
			name:  "multiple gaps do not merge",
			dates: []string{"2026-03-01", "2026-03-03", "2026-03-04", "2026-03-08"},
			want: []models.DateGap{
				{Start: "2026-03-02", End: "2026-03-02", Days: 1},
				{Start: "2026-03-05", End: "2026-03-07", Days: 3},
			},
		},
		{
			name:  "duplicates are not gaps",
			dates: []string{"2026-03-01", "2026-03-01", "2026-03-02"},
			want:  []models.DateGap{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := FindDateStringGaps(tt.dates)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindDateStringGaps(%v) = %+v, want %+v", tt.dates, got, tt.want)
			}
		})
	}
}

func TestFindDateGapsIgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	// Late evening and early morning timestamps still count whole days.
	a := time.Date(2026, time.March, 28, 23, 30, 0, 0, time.UTC)
	b := time.Date(2026, time.March, 31, 0, 15, 0, 0, time.UTC)

	got := FindDateGaps([]time.Time{a, b})
	want := []models.DateGap{{Start: "2026-03-29", End: "2026-03-30", Days: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindDateGaps() = %+v, want %+v", got, want)
	}
}

func TestReport(t *testing.T) {
	t.Parallel()

	dates := []time.Time{
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC),
	}

	r := Report(models.ResourceWater, dates)
	if r.ResourceType != models.ResourceWater {
		t.Errorf("ResourceType = %q", r.ResourceType)
	}
	if len(r.Gaps) != 2 {
		t.Fatalf("expected 2 gaps, got %d", len(r.Gaps))
	}
	if r.TotalMissingDays != 4 {
		t.Errorf("TotalMissingDays = %d, want 4", r.TotalMissingDays)
	}
	if r.DatesWithData != 3 {
		t.Errorf("DatesWithData = %d, want 3", r.DatesWithData)
	}
	if r.FirstDate != "2026-01-01" || r.LastDate != "2026-01-07" {
		t.Errorf("range = %s..%s", r.FirstDate, r.LastDate)
	}

	empty := Report(models.ResourceElectric, nil)
	if empty.Gaps == nil || len(empty.Gaps) != 0 || empty.FirstDate != "" {
		t.Errorf("empty report = %+v", empty)
	}
}
