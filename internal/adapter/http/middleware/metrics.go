package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/iho/gobank/internal/infrastructure/metrics"
)

// Metrics records HTTP metrics into m.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			m.HTTPInFlight.Inc()
			defer m.HTTPInFlight.Dec()

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			path := routePattern(r)

			m.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(status)).Inc()
			m.HTTPDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}

// routePattern prefers the matched chi pattern and falls back to normalizePath.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return normalizePath(r.URL.Path)
}

// normalizePath normalizes URL paths to avoid high cardinality.
//
//	/api/v1/accounts/alice/transactions -> /api/v1/accounts/{id}/transactions
//	/api/v1/transactions/42             -> /api/v1/transactions/{id}
func normalizePath(path string) string {
	const (
		accounts     = "/api/v1/accounts/"
		transactions = "/api/v1/transactions/"
	)

	switch {
	case strings.HasPrefix(path, accounts) && len(path) > len(accounts):
		rest := path[len(accounts):]
		suffix := ""
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			suffix = rest[i:]
		}
		return accounts + "{id}" + suffix

	case strings.HasPrefix(path, transactions) && len(path) > len(transactions):
		rest := path[len(transactions):]
		if _, err := strconv.ParseUint(rest, 10, 64); err == nil {
			return transactions + "{id}"
		}
	}

	return path
}
