package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/gobank/internal/infrastructure/metrics"
)

func TestRateLimiter_Limit(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	rl := NewRateLimiter(1, 2, m)

	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("expected burst of 2 to pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected third request to be limited, got %v", codes)
	}
	if got := testutil.ToFloat64(m.RateLimitHits); got != 1 {
		t.Fatalf("expected one rate limit hit, got %v", got)
	}

	// A different port from the same host shares the bucket.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:6000"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected same host to stay limited, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected other host to pass, got %d", rr.Code)
	}
}

func TestRateLimiter_CleanupLimiters(t *testing.T) {
	rl := NewRateLimiter(10, 10, nil)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getLimiter("10.0.0.1")
	now = now.Add(10 * time.Minute)
	rl.getLimiter("10.0.0.2")

	if removed := rl.CleanupLimiters(5 * time.Minute); removed != 1 {
		t.Fatalf("expected one idle limiter removed, got %d", removed)
	}
	if rl.Len() != 1 {
		t.Fatalf("expected one limiter left, got %d", rl.Len())
	}
}
