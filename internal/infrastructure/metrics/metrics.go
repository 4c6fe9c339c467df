package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger operation metrics
	Operations        *prometheus.CounterVec
	OperationErrors   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	OperationAmount   *prometheus.HistogramVec

	// Account metrics
	AccountsCreated prometheus.Counter

	// Authentication metrics
	AuthAttempts  *prometheus.CounterVec
	TokensIssued  prometheus.Counter
	TokensRevoked prometheus.Counter

	// API metrics
	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
	HTTPInFlight   prometheus.Gauge
	RateLimitHits  prometheus.Counter
	IdempotentHits prometheus.Counter

	// Event stream metrics
	EventsPublished     prometheus.Counter
	EventPublishErrors  prometheus.Counter
	EventCursorPosition prometheus.Gauge
}

// New creates all Prometheus metrics and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		// Ledger operation metrics
		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_operations_total",
				Help: "Total number of accepted ledger operations by type",
			},
			[]string{"operation"},
		),
		OperationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_operation_errors_total",
				Help: "Total number of rejected ledger operations by type and reason",
			},
			[]string{"operation", "reason"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gobank_operation_duration_seconds",
				Help:    "Duration of ledger operations",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"operation"},
		),
		OperationAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gobank_operation_amount",
				Help:    "Amounts moved by ledger operations",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"operation"},
		),

		// Account metrics
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "gobank_accounts_created_total",
			Help: "Total number of accounts created",
		}),

		// Authentication metrics
		AuthAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),
		TokensIssued: factory.NewCounter(prometheus.CounterOpts{
			Name: "gobank_tokens_issued_total",
			Help: "Total access tokens issued",
		}),
		TokensRevoked: factory.NewCounter(prometheus.CounterOpts{
			Name: "gobank_tokens_revoked_total",
			Help: "Total access tokens revoked by logout",
		}),

		// API metrics
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gobank_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gobank_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),
		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "gobank_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),
		IdempotentHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "gobank_idempotent_replays_total",
			Help: "Total responses replayed from an idempotency key",
		}),

		// Event stream metrics
		EventsPublished: factory.NewCounter(prometheus.CounterOpts{
			Name: "gobank_events_published_total",
			Help: "Total transaction events published",
		}),
		EventPublishErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "gobank_event_publish_errors_total",
			Help: "Total failed transaction event publish attempts",
		}),
		EventCursorPosition: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gobank_event_cursor_position",
			Help: "ID of the last transaction published to the event stream",
		}),
	}
}

// RecordOperation records an accepted ledger operation.
func (m *Metrics) RecordOperation(operation string, amount decimal.Decimal, duration time.Duration) {
	m.Operations.WithLabelValues(operation).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	m.OperationAmount.WithLabelValues(operation).Observe(amount.InexactFloat64())
}

// RecordFailure records a rejected ledger operation.
func (m *Metrics) RecordFailure(operation string, err error) {
	m.OperationErrors.WithLabelValues(operation, Reason(err)).Inc()
}

// RecordAccountCreated increments the account counter.
func (m *Metrics) RecordAccountCreated() {
	m.AccountsCreated.Inc()
}

// RecordAuthentication records a credential check outcome.
func (m *Metrics) RecordAuthentication(success bool) {
	status := "failure"
	if success {
		status = "success"
	}
	m.AuthAttempts.WithLabelValues(status).Inc()
}

// Reason maps an error to a low-cardinality label value.
func Reason(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrDuplicateAccount):
		return "duplicate_account"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrSelfTransfer):
		return "self_transfer"
	case errors.Is(err, domain.ErrInvalidAccountID), errors.Is(err, domain.ErrInvalidCredential):
		return "invalid_input"
	default:
		return "internal"
	}
}
