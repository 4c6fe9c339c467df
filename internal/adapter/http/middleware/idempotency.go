package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/gobank/internal/infrastructure/metrics"
	"github.com/iho/gobank/internal/usecase"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency keys.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayHeader marks a response served from the store.
	IdempotencyReplayHeader = "X-Idempotency-Replay"
)

// storedResponse is what the store keeps for a finished request.
type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type,omitempty"`
	Body        []byte `json:"body"`
}

// IdempotencyMiddleware replays the response of a POST that carried an
// Idempotency-Key already seen within the TTL.
type IdempotencyMiddleware struct {
	store   usecase.IdempotencyStore
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware. m may be nil.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore, ttl time.Duration, m *metrics.Metrics, logger zerolog.Logger) *IdempotencyMiddleware {
	if ttl <= 0 {
		ttl = usecase.IdempotencyKeyTTL
	}
	return &IdempotencyMiddleware{
		store:   store,
		ttl:     ttl,
		metrics: m,
		logger:  logger,
	}
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}
		key = scopedKey(r, key)

		// Store calls outlive a disconnected client.
		ctx := context.WithoutCancel(r.Context())

		exists, cached, err := m.store.CheckAndSet(ctx, key, nil, m.ttl)
		if err != nil {
			m.logger.Error().Err(err).Str("key", key).Msg("idempotency check failed")
			writeError(w, http.StatusInternalServerError, "idempotency check failed", "")
			return
		}

		if exists {
			m.replay(w, key, cached)
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}

		// Runs on non-2xx responses and while a panic unwinds.
		completed := false
		defer func() {
			if completed {
				return
			}
			if err := m.store.Release(ctx, key); err != nil {
				m.logger.Warn().Err(err).Str("key", key).Msg("failed to release idempotency key")
			}
		}()

		next.ServeHTTP(recorder, r)

		if recorder.statusCode < 200 || recorder.statusCode >= 300 {
			return
		}
		completed = true

		stored, err := json.Marshal(storedResponse{
			Status:      recorder.statusCode,
			ContentType: recorder.Header().Get("Content-Type"),
			Body:        recorder.body.Bytes(),
		})
		if err == nil {
			err = m.store.Update(ctx, key, stored, m.ttl)
		}
		if err != nil {
			m.logger.Warn().Err(err).Str("key", key).Msg("failed to store idempotent response")
		}
	})
}

// scopedKey ties a client key to the endpoint and, for authenticated
// requests, to the token subject.
func scopedKey(r *http.Request, key string) string {
	if claims, ok := ClaimsFromContext(r.Context()); ok {
		return r.URL.Path + ":" + claims.AccountID + ":" + key
	}
	return r.URL.Path + ":" + key
}

func (m *IdempotencyMiddleware) replay(w http.ResponseWriter, key string, cached []byte) {
	if string(cached) == usecase.IdempotencyProcessing {
		writeError(w, http.StatusConflict, "request in progress", "a request with this idempotency key is still being processed")
		return
	}

	var stored storedResponse
	if err := json.Unmarshal(cached, &stored); err != nil {
		m.logger.Error().Err(err).Str("key", key).Msg("corrupt idempotent response")
		writeError(w, http.StatusInternalServerError, "idempotency check failed", "")
		return
	}

	if m.metrics != nil {
		m.metrics.IdempotentHits.Inc()
	}

	if stored.ContentType != "" {
		w.Header().Set("Content-Type", stored.ContentType)
	}
	w.Header().Set(IdempotencyReplayHeader, "true")
	w.WriteHeader(stored.Status)
	w.Write(stored.Body)
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
