package stream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"goldsite/config"
	"goldsite/internal/memorystore"
	"goldsite/internal/poller"
	"goldsite/internal/price"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type fixedFetcher float64

func (f fixedFetcher) Fetch(context.Context) price.Quote {
	return price.Derive(float64(f), time.Now())
}

func dial(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/gold/stream" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

// go test -v --run TestStreamPushesTicks
func TestStreamPushesTicks(t *testing.T) {
	sessions := memorystore.NewSessionStore()
	h := NewHandler(fixedFetcher(2000), sessions, config.StreamConfig{}, zap.NewNop(),
		poller.WithInterval(10*time.Millisecond))
	server := httptest.NewServer(h)
	defer server.Close()

	conn := dial(t, server, "")

	msg := readMessage(t, conn)
	if msg.Type != "tick" || msg.View == nil {
		t.Fatalf("expected tick, got %+v", msg)
	}
	if len(msg.View.History) != 30 || msg.View.Quote.TwentyFourK != 2000 {
		t.Errorf("unexpected view: %d entries, base %v", len(msg.View.History), msg.View.Quote.TwentyFourK)
	}
	if msg.View.Readout.SellText != "1999.00" {
		t.Errorf("unexpected readout %+v", msg.View.Readout)
	}
	if sessions.CountAll() != 1 {
		t.Errorf("expected one open session, got %d", sessions.CountAll())
	}

	if err := conn.WriteJSON(ClientMessage{Op: "mode", Mode: "hours"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	for i := 0; ; i++ {
		msg = readMessage(t, conn)
		if msg.View != nil && msg.View.Mode == poller.ModeHours {
			break
		}
		if i > 100 {
			t.Fatal("mode switch never applied")
		}
	}
	if len(msg.View.History) != 24 {
		t.Errorf("expected 24 entries in hours mode, got %d", len(msg.View.History))
	}

	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for sessions.CountAll() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("session not removed after disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// go test -v --run TestStreamRejectsUnknownMode
func TestStreamRejectsUnknownMode(t *testing.T) {
	h := NewHandler(fixedFetcher(2000), memorystore.NewSessionStore(), config.StreamConfig{}, zap.NewNop())
	server := httptest.NewServer(h)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/gold/stream?mode=weeks")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

// go test -v --run TestStreamOriginCheck
func TestStreamOriginCheck(t *testing.T) {
	check := allowOrigins([]string{"https://rizziinternational.com"})

	ok := httptest.NewRequest(http.MethodGet, "/", nil)
	ok.Header.Set("Origin", "https://rizziinternational.com")
	bad := httptest.NewRequest(http.MethodGet, "/", nil)
	bad.Header.Set("Origin", "https://evil.example")

	if !check(ok) || check(bad) {
		t.Error("origin check mismatch")
	}
}
