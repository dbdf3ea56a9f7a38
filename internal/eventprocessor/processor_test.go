// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package eventprocessor

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"

	"github.com/tomtom215/utilitrack/internal/config"
	"github.com/tomtom215/utilitrack/internal/logging"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{Level: "error", Format: "json", Output: io.Discard})
}

type fakeInvalidator struct {
	mu       sync.Mutex
	prefixes []string
}

func (f *fakeInvalidator) DeletePrefix(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefixes = append(f.prefixes, prefix)
	return 2
}

func (f *fakeInvalidator) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prefixes...)
}

type fakeBroadcaster struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (f *fakeBroadcaster) BroadcastRaw(data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, data)
}

func (f *fakeBroadcaster) messages() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.payloads...)
}

func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal(msg)
}

// startProcessor runs p until the test ends and waits for its consumers.
func startProcessor(t *testing.T, p *Processor) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Serve(ctx) }()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer waitCancel()
	if err := p.WaitRunning(waitCtx); err != nil {
		t.Fatalf("processor did not start: %v", err)
	}

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Serve returned %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Error("Serve did not return")
		}
		_ = p.Close()
	})
}

func testEventsConfig() config.EventsConfig {
	return config.EventsConfig{OutputBuffer: 16, RouterCloseTimeout: time.Second, RetryCount: 1}
}

func TestNewPublisherRequiresPublisher(t *testing.T) {
	t.Parallel()

	if _, err := NewPublisher(nil); !errors.Is(err, ErrNilPublisher) {
		t.Errorf("error = %v, want ErrNilPublisher", err)
	}
}

func TestProcessorReadingsImported(t *testing.T) {
	t.Parallel()

	inv, bc := &fakeInvalidator{}, &fakeBroadcaster{}
	p, err := New(testEventsConfig(), inv, bc)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	startProcessor(t, p)

	ctx := logging.ContextWithCorrelationID(context.Background(), "corr-1")
	if err := p.Publisher().PublishReadingsImported(ctx, testSummary()); err != nil {
		t.Fatalf("PublishReadingsImported: %v", err)
	}

	eventually(t, func() bool { return len(bc.messages()) == 1 }, "broadcast not received")

	if got := inv.calls(); len(got) != 1 || got[0] != "el/" {
		t.Errorf("invalidated prefixes = %v, want [el/]", got)
	}

	var envelope struct {
		Type string `json:"type"`
		Data struct {
			ImportID string `json:"import_id"`
			Inserted int    `json:"inserted"`
		} `json:"data"`
	}
	if err := json.Unmarshal(bc.messages()[0], &envelope); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if envelope.Type != "readings_imported" || envelope.Data.ImportID != "imp-1" || envelope.Data.Inserted != 3 {
		t.Errorf("envelope = %+v", envelope)
	}

	stats := p.Handlers().Stats()
	if stats.Handled != 1 || stats.Invalidated != 2 || stats.Broadcasts != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if !p.IsRunning() {
		t.Error("processor should report running")
	}
}

func TestProcessorTargetsChanged(t *testing.T) {
	t.Parallel()

	inv, bc := &fakeInvalidator{}, &fakeBroadcaster{}
	p, err := New(testEventsConfig(), inv, bc)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	startProcessor(t, p)

	if err := p.Publisher().PublishTargetsChanged(context.Background(), TargetCreated, testTarget()); err != nil {
		t.Fatalf("PublishTargetsChanged: %v", err)
	}

	eventually(t, func() bool { return len(bc.messages()) == 1 }, "broadcast not received")
	if got := inv.calls(); len(got) != 1 || got[0] != "water/" {
		t.Errorf("invalidated prefixes = %v, want [water/]", got)
	}
	if !strings.Contains(string(bc.messages()[0]), `"type":"targets_changed"`) {
		t.Errorf("payload = %s", bc.messages()[0])
	}
}

func TestProcessorPoisonsUndecodableMessages(t *testing.T) {
	t.Parallel()

	inv, bc := &fakeInvalidator{}, &fakeBroadcaster{}
	p, err := New(testEventsConfig(), inv, bc)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	startProcessor(t, p)

	if err := p.pubSub.Publish(TopicReadingsImported, message.NewMessage("bad-1", []byte("not json"))); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	eventually(t, func() bool { return p.Handlers().Stats().Poisoned == 1 }, "message was not poisoned")
	if len(inv.calls()) != 0 || len(bc.messages()) != 0 {
		t.Error("undecodable message must not invalidate or broadcast")
	}
}

func TestProcessorNilDependencies(t *testing.T) {
	t.Parallel()

	p, err := New(testEventsConfig(), nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	startProcessor(t, p)

	if err := p.Publisher().PublishReadingsImported(context.Background(), testSummary()); err != nil {
		t.Fatalf("PublishReadingsImported: %v", err)
	}
	eventually(t, func() bool { return p.Handlers().Stats().Handled == 1 }, "event not handled")
}

func TestProcessorString(t *testing.T) {
	t.Parallel()

	p, err := New(config.EventsConfig{}, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Close()
	if p.String() != "event-processor" {
		t.Errorf("String() = %q", p.String())
	}
	if p.IsRunning() {
		t.Error("processor should not run before Serve")
	}
}
