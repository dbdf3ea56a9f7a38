// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
)

// MockService stands in for a supervised component. It blocks until its
// context ends, after failing a configurable number of starts.
type MockService struct {
	name   string
	starts atomic.Int32
	stops  atomic.Int32
	fails  atomic.Int32
}

func NewMockService(name string) *MockService {
	return &MockService{name: name}
}

// SetFailCount makes the next n calls to Serve return an error at once.
func (m *MockService) SetFailCount(n int) {
	m.fails.Store(int32(n))
}

func (m *MockService) Serve(ctx context.Context) error {
	m.starts.Add(1)
	defer m.stops.Add(1)

	if m.fails.Add(-1) >= 0 {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (m *MockService) StartCount() int32 { return m.starts.Load() }

func (m *MockService) StopCount() int32 { return m.stops.Load() }

func (m *MockService) String() string { return m.name }
