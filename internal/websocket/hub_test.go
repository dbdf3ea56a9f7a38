// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package websocket

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/utilitrack/internal/logging"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "info",
		Format: "console",
		Output: io.Discard,
	})
}

// startHub runs a hub until the test ends.
func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = hub.Serve(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return hub, cancel
}

func newTestClient(hub *Hub, buffer int) *Client {
	return &Client{id: clientIDCounter.Add(1), hub: hub, send: make(chan Message, buffer)}
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case msg, ok := <-c.send:
		if !ok {
			t.Fatal("send channel closed")
		}
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
	return Message{}
}

func waitForCount(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if hub.GetClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client count = %d, want %d", hub.GetClientCount(), want)
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	t.Parallel()

	hub, _ := startHub(t)
	a, b := newTestClient(hub, 4), newTestClient(hub, 4)
	hub.Register <- a
	hub.Register <- b
	waitForCount(t, hub, 2)

	hub.BroadcastJSON(MessageTypeTargetsChanged, map[string]string{"action": "created"})

	for _, c := range []*Client{a, b} {
		msg := receive(t, c)
		if msg.Type != MessageTypeTargetsChanged {
			t.Errorf("type = %q, want %q", msg.Type, MessageTypeTargetsChanged)
		}
	}
}

func TestHub_Unregister(t *testing.T) {
	t.Parallel()

	hub, _ := startHub(t)
	c := newTestClient(hub, 1)
	hub.Register <- c
	waitForCount(t, hub, 1)

	hub.Unregister <- c
	waitForCount(t, hub, 0)
	if _, ok := <-c.send; ok {
		t.Error("send channel should be closed after unregister")
	}

	// unknown clients are ignored
	hub.Unregister <- newTestClient(hub, 1)
	waitForCount(t, hub, 0)
}

func TestHub_DropsSlowClient(t *testing.T) {
	t.Parallel()

	hub, _ := startHub(t)
	slow := newTestClient(hub, 1)
	fast := newTestClient(hub, 8)
	hub.Register <- slow
	hub.Register <- fast
	waitForCount(t, hub, 2)

	hub.BroadcastJSON("first", nil)
	hub.BroadcastJSON("second", nil)

	if got := receive(t, fast); got.Type != "first" {
		t.Fatalf("fast client got %q, want first", got.Type)
	}
	if got := receive(t, fast); got.Type != "second" {
		t.Fatalf("fast client got %q, want second", got.Type)
	}
	waitForCount(t, hub, 1)
}

func TestHub_BroadcastRaw(t *testing.T) {
	t.Parallel()

	hub, _ := startHub(t)
	c := newTestClient(hub, 4)
	hub.Register <- c
	waitForCount(t, hub, 1)

	hub.BroadcastRaw([]byte("not json"))
	hub.BroadcastRaw([]byte(`{"data":{"x":1}}`))
	hub.BroadcastRaw([]byte(`{"type":"readings_imported","data":{"inserted":3}}`))

	msg := receive(t, c)
	if msg.Type != MessageTypeReadingsImported {
		t.Fatalf("type = %q, want readings_imported", msg.Type)
	}
	encoded, err := MarshalMessage(msg)
	if err != nil {
		t.Fatalf("MarshalMessage: %v", err)
	}
	var decoded struct {
		Data struct {
			Inserted int `json:"inserted"`
		} `json:"data"`
	}
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Data.Inserted != 3 {
		t.Errorf("inserted = %d, want 3", decoded.Data.Inserted)
	}
}

func TestHub_ServeClosesClientsOnShutdown(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- hub.Serve(ctx) }()

	c := newTestClient(hub, 1)
	hub.Register <- c
	waitForCount(t, hub, 1)

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not return")
	}
	if hub.GetClientCount() != 0 {
		t.Errorf("clients remaining = %d", hub.GetClientCount())
	}
	if _, ok := <-c.send; ok {
		t.Error("client channel should be closed")
	}
}

func TestGetShutdownReason(t *testing.T) {
	t.Parallel()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	if got := getShutdownReason(canceled); got != ShutdownReasonContextCanceled {
		t.Errorf("canceled reason = %q", got)
	}

	expired, cancel2 := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel2()
	if got := getShutdownReason(expired); got != ShutdownReasonContextDeadline {
		t.Errorf("deadline reason = %q", got)
	}
}

func TestHub_String(t *testing.T) {
	t.Parallel()

	if got := NewHub().String(); got != "websocket-hub" {
		t.Errorf("String() = %q", got)
	}
}
