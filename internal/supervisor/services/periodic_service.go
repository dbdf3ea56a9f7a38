// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/tomtom215/utilitrack/internal/logging"
)

// Task is one run of a periodic maintenance job.
type Task func(ctx context.Context) error

// PeriodicService runs a Task every interval until its context ends.
// A failing run is logged and retried on the next tick instead of
// restarting the service.
//
//	svc := services.NewPeriodicService("duckdb-checkpoint", 15*time.Minute, db.Checkpoint)
//	tree.AddDataService(svc)
type PeriodicService struct {
	name     string
	interval time.Duration
	task     Task

	runs     atomic.Int64
	failures atomic.Int64
}

// NewPeriodicService creates a periodic service. interval must be positive.
func NewPeriodicService(name string, interval time.Duration, task Task) *PeriodicService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &PeriodicService{name: name, interval: interval, task: task}
}

// Serve runs the task on every tick.
func (p *PeriodicService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.runOnce(ctx)
		}
	}
}

func (p *PeriodicService) runOnce(ctx context.Context) {
	start := time.Now()
	p.runs.Add(1)
	if err := p.task(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		p.failures.Add(1)
		logging.Warn().Err(err).Str("service", p.name).Msg("Periodic task failed")
		return
	}
	logging.Debug().
		Str("service", p.name).
		Dur("duration", time.Since(start)).
		Msg("Periodic task completed")
}

// Runs returns how many times the task has run.
func (p *PeriodicService) Runs() int64 {
	return p.runs.Load()
}

// Failures returns how many runs returned an error.
func (p *PeriodicService) Failures() int64 {
	return p.failures.Load()
}

// String names the service for the supervisor.
func (p *PeriodicService) String() string {
	return p.name
}
