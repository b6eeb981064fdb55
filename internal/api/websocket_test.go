package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/FocuswithJustin/StudyBible/core/verses"
	"github.com/FocuswithJustin/StudyBible/internal/bundled"
)

// newWebSocketServer builds a server with the hub running, since broadcasts
// are only delivered while Run is live.
func newWebSocketServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	cat, err := bundled.Catalog()
	if err != nil {
		t.Fatalf("bundled.Catalog() error: %v", err)
	}
	l, err := bundled.Loader(cat)
	if err != nil {
		t.Fatalf("bundled.Loader() error: %v", err)
	}

	srv := NewServer(Config{}, cat, verses.New(cat, l))
	go srv.hub.Run()

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func dialWebSocket(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// waitForClients blocks until the hub has registered n clients; registration
// happens on the server side after the handshake response is written.
func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for {
		hub.mu.RLock()
		count := len(hub.clients)
		hub.mu.RUnlock()
		if count >= n {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("hub has %d clients, want %d", count, n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// The upgrade must succeed through the full middleware chain, not just
// against the bare handler.
func TestWebSocketUpgradeThroughMiddleware(t *testing.T) {
	srv, ts := newWebSocketServer(t)

	dialWebSocket(t, ts)
	waitForClients(t, srv.hub, 1)
}

func TestWebSocketReceivesParallelStateBroadcast(t *testing.T) {
	srv, ts := newWebSocketServer(t)

	conn := dialWebSocket(t, ts)
	waitForClients(t, srv.hub, 1)

	postJSON(t, ts.URL+"/api/parallel/primary",
		`{"translation_id": "kjv", "book_id": "gen", "chapter": 1}`,
		http.StatusOK, nil)

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg StateMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read state message: %v", err)
	}
	if msg.Type != "parallel_state" {
		t.Errorf("message type = %q, want parallel_state", msg.Type)
	}
	if msg.State.PrimaryID != "kjv" || msg.State.BookID != "gen" || msg.State.Chapter != 1 {
		t.Errorf("broadcast state = %+v, want kjv gen 1", msg.State)
	}
	if msg.Timestamp == "" {
		t.Error("broadcast carries no timestamp")
	}
}
