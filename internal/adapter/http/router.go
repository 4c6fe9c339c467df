package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/gobank/internal/adapter/http/handler"
	"github.com/iho/gobank/internal/adapter/http/middleware"
	"github.com/iho/gobank/internal/infrastructure/metrics"
	"github.com/iho/gobank/internal/usecase"
)

// RouterConfig holds dependencies for the router. Optional fields may be nil.
type RouterConfig struct {
	AccountHandler     *handler.AccountHandler
	AuthHandler        *handler.AuthHandler
	TransactionHandler *handler.TransactionHandler
	LedgerHandler      *handler.LedgerHandler
	HealthHandler      *handler.HealthHandler

	// TokenVerifier authenticates bearer tokens for logout and, when
	// AuthEnabled is set, for withdraw and transfer.
	TokenVerifier middleware.TokenVerifier
	TokenDenylist usecase.TokenDenylist
	AuthEnabled   bool

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	Metrics          *metrics.Metrics
	MetricsHandler   http.Handler
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	var requireToken func(http.Handler) http.Handler
	if cfg.TokenVerifier != nil {
		requireToken = middleware.AuthMiddleware(cfg.TokenVerifier, cfg.TokenDenylist)
	}

	// Replay runs after token checks so a key never bypasses auth.
	idempotent := func(next http.Handler) http.Handler { return next }
	if cfg.IdempotencyStore != nil {
		idempotent = middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Metrics, cfg.Logger).Wrap
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Auth
		r.Post("/auth", cfg.AuthHandler.Login)
		r.Group(func(r chi.Router) {
			if requireToken != nil {
				r.Use(requireToken)
			}
			r.Post("/auth/logout", cfg.AuthHandler.Logout)
		})

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.With(idempotent).Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Get("/{id}/transactions", cfg.TransactionHandler.ListByAccount)
		})

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.With(idempotent).Post("/deposit", cfg.TransactionHandler.Deposit)
			r.Get("/{id}", cfg.TransactionHandler.Get)

			r.Group(func(r chi.Router) {
				if cfg.AuthEnabled && requireToken != nil {
					r.Use(requireToken)
				}
				r.Use(idempotent)
				r.Post("/withdraw", cfg.TransactionHandler.Withdraw)
				r.Post("/transfer", cfg.TransactionHandler.Transfer)
			})
		})

		// Ledger
		r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
	})

	return r
}
