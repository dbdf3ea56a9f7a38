// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/utilitrack/internal/models"
)

func TestTargetProgress(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, fixtureStore())
	p, err := e.TargetProgress(context.Background(), models.ResourceElectric, e.Today())
	if err != nil {
		t.Fatalf("TargetProgress: %v", err)
	}

	if p.Period.Key != "2026-02" || p.Stats.Total != 50 || p.Stats.DaysWithData != 4 || p.Stats.TotalDays != 28 {
		t.Errorf("Period = %s, Stats = %+v", p.Period.Key, p.Stats)
	}
	if p.Stats.Projection == nil || !approx(*p.Stats.Projection, 350) {
		t.Errorf("Projection = %v, want 350", p.Stats.Projection)
	}
	if p.Target == nil || p.Target.Value != 500 {
		t.Fatalf("Target = %+v, want 500", p.Target)
	}
	if p.PercentOfTarget == nil || !approx(*p.PercentOfTarget, 10) {
		t.Errorf("PercentOfTarget = %v, want 10", p.PercentOfTarget)
	}
	if p.ProjectedPercentOfTarget == nil || !approx(*p.ProjectedPercentOfTarget, 70) {
		t.Errorf("ProjectedPercentOfTarget = %v, want 70", p.ProjectedPercentOfTarget)
	}
}

func TestTargetProgressWithoutTarget(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, fixtureStore())
	p, err := e.TargetProgress(context.Background(), models.ResourceWater, e.Today())
	if err != nil {
		t.Fatalf("TargetProgress: %v", err)
	}
	if p.Target != nil || p.PercentOfTarget != nil || p.ProjectedPercentOfTarget != nil {
		t.Errorf("expected no target percentages, got %+v", p)
	}
	if p.Unit != "L" || p.Stats.Total != 100 {
		t.Errorf("Unit = %s, Total = %v", p.Unit, p.Stats.Total)
	}
}

func TestTargetProgressFollowsReferenceDate(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, fixtureStore())
	today := time.Date(2026, time.March, 1, 0, 0, 1, 0, time.UTC)
	p, err := e.TargetProgress(context.Background(), models.ResourceElectric, today)
	if err != nil {
		t.Fatalf("TargetProgress: %v", err)
	}
	if p.Period.Key != "2026-03" || p.ReferenceDate != "2026-03-01" {
		t.Errorf("Period = %s, ReferenceDate = %s", p.Period.Key, p.ReferenceDate)
	}
	if p.Stats.TotalDays != 31 {
		t.Errorf("TotalDays = %d, want 31", p.Stats.TotalDays)
	}
}

func TestTargetProgressStoreFailure(t *testing.T) {
	t.Parallel()

	store := fixtureStore()
	store.failOn = "ActiveTarget"
	e := newTestEngine(t, store)
	if _, err := e.TargetProgress(context.Background(), models.ResourceElectric, e.Today()); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("err = %v, want ErrStoreUnavailable", err)
	}
}

func TestGaps(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, fixtureStore())
	report, err := e.Gaps(context.Background(), models.ResourceElectric)
	if err != nil {
		t.Fatalf("Gaps: %v", err)
	}
	if len(report.Gaps) != 2 || report.TotalMissingDays != 17 || report.DatesWithData != 5 {
		t.Fatalf("report = %+v", report)
	}
	first := report.Gaps[0]
	if first.Start != "2026-01-21" || first.End != "2026-02-02" || first.Days != 13 {
		t.Errorf("first gap = %+v", first)
	}
	if report.FirstDate != "2026-01-20" || report.LastDate != "2026-02-10" {
		t.Errorf("range = %s..%s", report.FirstDate, report.LastDate)
	}

	store := fixtureStore()
	store.failOn = "DistinctDates"
	if _, err := newTestEngine(t, store).Gaps(context.Background(), models.ResourceElectric); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("err = %v, want ErrStoreUnavailable", err)
	}
}
