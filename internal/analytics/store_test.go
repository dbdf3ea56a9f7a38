// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package analytics

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/utilitrack/internal/calendar"
	"github.com/tomtom215/utilitrack/internal/models"
)

var errBoom = errors.New("boom")

// memStore is an in-memory Store. failOn names a method that returns errBoom.
type memStore struct {
	mu       sync.Mutex
	readings map[models.ResourceType]map[string]float64
	targets  []models.Target
	failOn   string
	calls    map[string]int
}

func newMemStore() *memStore {
	return &memStore{
		readings: make(map[models.ResourceType]map[string]float64),
		calls:    make(map[string]int),
	}
}

func (s *memStore) add(resource models.ResourceType, day string, value float64) *memStore {
	if s.readings[resource] == nil {
		s.readings[resource] = make(map[string]float64)
	}
	s.readings[resource][day] = value
	return s
}

func (s *memStore) addTarget(id int64, pt models.PeriodType, resource models.ResourceType, value float64, validFrom string) *memStore {
	s.targets = append(s.targets, models.Target{ID: id, PeriodType: pt, ResourceType: resource, Value: value, ValidFrom: validFrom})
	return s
}

func (s *memStore) enter(method string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[method]++
	if s.failOn == method {
		return errBoom
	}
	return nil
}

func (s *memStore) sorted(resource models.ResourceType, r models.DateRange) []models.DailyValue {
	out := make([]models.DailyValue, 0)
	for day, v := range s.readings[resource] {
		d, err := calendar.ParseDate(day)
		if err != nil {
			continue
		}
		if !r.IsZero() && (d.Before(r.Start) || d.After(r.End)) {
			continue
		}
		out = append(out, models.DailyValue{Date: d, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (s *memStore) ReadingsInRange(_ context.Context, resource models.ResourceType, start, end time.Time) ([]models.DailyValue, error) {
	if err := s.enter("ReadingsInRange"); err != nil {
		return nil, err
	}
	return s.sorted(resource, models.DateRange{Start: start, End: end}), nil
}

func (s *memStore) DistinctDates(_ context.Context, resource models.ResourceType) ([]time.Time, error) {
	if err := s.enter("DistinctDates"); err != nil {
		return nil, err
	}
	values := s.sorted(resource, models.DateRange{})
	dates := make([]time.Time, len(values))
	for i, v := range values {
		dates[i] = v.Date
	}
	return dates, nil
}

func (s *memStore) ActiveTarget(_ context.Context, pt models.PeriodType, resource models.ResourceType, asOf time.Time) (*models.Target, error) {
	if err := s.enter("ActiveTarget"); err != nil {
		return nil, err
	}
	day := calendar.FormatDate(asOf)
	var best *models.Target
	for i := range s.targets {
		t := &s.targets[i]
		if t.PeriodType != pt || t.ResourceType != resource || t.ValidFrom > day {
			continue
		}
		if best == nil || t.ValidFrom > best.ValidFrom || (t.ValidFrom == best.ValidFrom && t.ID > best.ID) {
			best = t
		}
	}
	if best == nil {
		return nil, nil
	}
	out := *best
	return &out, nil
}

func (s *memStore) MinMaxReadingYear(_ context.Context, resource models.ResourceType) (int, int, bool, error) {
	if err := s.enter("MinMaxReadingYear"); err != nil {
		return 0, 0, false, err
	}
	values := s.sorted(resource, models.DateRange{})
	if len(values) == 0 {
		return 0, 0, false, nil
	}
	return values[0].Date.Year(), values[len(values)-1].Date.Year(), true, nil
}

func (s *memStore) averages(resource models.ResourceType, r models.DateRange, key func(time.Time) int) map[int]float64 {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, v := range s.sorted(resource, r) {
		k := key(v.Date)
		sums[k] += v.Value
		counts[k]++
	}
	for k := range sums {
		sums[k] /= float64(counts[k])
	}
	return sums
}

func (s *memStore) WeekdayAverages(_ context.Context, resource models.ResourceType, r models.DateRange) (map[int]float64, error) {
	if err := s.enter("WeekdayAverages"); err != nil {
		return nil, err
	}
	return s.averages(resource, r, func(t time.Time) int { return int(t.Weekday()) }), nil
}

func (s *memStore) MonthAverages(_ context.Context, resource models.ResourceType, r models.DateRange) (map[int]float64, error) {
	if err := s.enter("MonthAverages"); err != nil {
		return nil, err
	}
	return s.averages(resource, r, func(t time.Time) int { return int(t.Month()) }), nil
}

func (s *memStore) DailyTotals(_ context.Context, resource models.ResourceType, r models.DateRange) ([]models.DailyValue, error) {
	if err := s.enter("DailyTotals"); err != nil {
		return nil, err
	}
	return s.sorted(resource, r), nil
}

// fixtureStore holds a small electricity history around February 2026 and
// one water reading.
//
//	2026-01-20 Tue 25   (W04)
//	2026-02-03 Tue 15   (W06)
//	2026-02-08 Sun  5   (W06)
//	2026-02-09 Mon 10   (W07)
//	2026-02-10 Tue 20   (W07)
func fixtureStore() *memStore {
	return newMemStore().
		add(models.ResourceElectric, "2026-01-20", 25).
		add(models.ResourceElectric, "2026-02-03", 15).
		add(models.ResourceElectric, "2026-02-08", 5).
		add(models.ResourceElectric, "2026-02-09", 10).
		add(models.ResourceElectric, "2026-02-10", 20).
		add(models.ResourceWater, "2026-02-09", 100).
		addTarget(1, models.PeriodWeekly, models.ResourceElectric, 200, "2026-01-01").
		addTarget(2, models.PeriodMonthly, models.ResourceElectric, 400, "2026-01-01").
		addTarget(3, models.PeriodMonthly, models.ResourceElectric, 500, "2026-02-01").
		addTarget(4, models.PeriodMonthly, models.ResourceElectric, 900, "2026-03-01")
}

// referenceNow is Wednesday 2026-02-11, inside ISO week 2026-W07.
var referenceNow = time.Date(2026, time.February, 11, 9, 30, 0, 0, time.UTC)

func newTestEngine(t *testing.T, store Store) *Engine {
	t.Helper()
	return NewEngine(store, Config{Clock: FixedClock(referenceNow), Location: time.UTC})
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func ptr(v float64) *float64 { return &v }
