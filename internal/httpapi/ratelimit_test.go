package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

// go test -v --run TestRateLimiterPerClient
func TestRateLimiterPerClient(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, zap.NewNop())
	h := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if got := send("10.0.0.1:1000"); got != http.StatusNoContent {
		t.Errorf("first request: %d", got)
	}
	if got := send("10.0.0.1:2000"); got != http.StatusTooManyRequests {
		t.Errorf("same host, new port should share the limit: %d", got)
	}
	if got := send("10.0.0.2:1000"); got != http.StatusNoContent {
		t.Errorf("other client must not be limited: %d", got)
	}
}

// go test -v --run TestRateLimiterCleanup
func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(1, 1, zap.NewNop())
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getLimiter("a")
	now = now.Add(20 * time.Minute)
	rl.getLimiter("b")

	if n := rl.Cleanup(10 * time.Minute); n != 1 {
		t.Errorf("expected 1 idle limiter removed, got %d", n)
	}
	if rl.Len() != 1 {
		t.Errorf("expected 1 limiter left, got %d", rl.Len())
	}
}
