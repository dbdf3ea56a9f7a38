// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// serveHub upgrades every request and attaches the connection to hub.
func serveHub(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		client := NewClient(hub, conn)
		hub.Register <- client
		client.Start()
	}))
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("SetReadDeadline: %v", err)
	}
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	return msg
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	a := NewClient(hub, nil)
	b := NewClient(hub, nil)
	if b.ID() <= a.ID() {
		t.Errorf("client IDs should increase: %d then %d", a.ID(), b.ID())
	}
	if cap(a.send) != sendBuffer {
		t.Errorf("send capacity = %d, want %d", cap(a.send), sendBuffer)
	}
}

func TestClient_ReceivesBroadcast(t *testing.T) {
	t.Parallel()

	hub, _ := startHub(t)
	conn := dial(t, serveHub(t, hub))
	waitForCount(t, hub, 1)

	hub.BroadcastJSON(MessageTypeReadingsImported, map[string]int{"inserted": 2})

	msg := readMessage(t, conn)
	if msg.Type != MessageTypeReadingsImported {
		t.Errorf("type = %q, want readings_imported", msg.Type)
	}
}

func TestClient_PingPong(t *testing.T) {
	t.Parallel()

	hub, _ := startHub(t)
	conn := dial(t, serveHub(t, hub))
	waitForCount(t, hub, 1)

	if err := conn.WriteJSON(Message{Type: MessageTypePing}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if msg := readMessage(t, conn); msg.Type != MessageTypePong {
		t.Errorf("type = %q, want pong", msg.Type)
	}
}

func TestClient_DisconnectUnregisters(t *testing.T) {
	t.Parallel()

	hub, _ := startHub(t)
	conn := dial(t, serveHub(t, hub))
	waitForCount(t, hub, 1)

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = conn.Close()

	waitForCount(t, hub, 0)
}
