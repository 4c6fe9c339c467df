package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/gobank/internal/adapter/http"
	"github.com/iho/gobank/internal/adapter/http/handler"
	"github.com/iho/gobank/internal/adapter/http/middleware"
	"github.com/iho/gobank/internal/adapter/repository/memory"
	redisRepo "github.com/iho/gobank/internal/adapter/repository/redis"
	"github.com/iho/gobank/internal/infrastructure/auth"
	"github.com/iho/gobank/internal/infrastructure/config"
	"github.com/iho/gobank/internal/infrastructure/eventpublisher"
	"github.com/iho/gobank/internal/infrastructure/logger"
	"github.com/iho/gobank/internal/infrastructure/metrics"
	"github.com/iho/gobank/internal/infrastructure/redis"
	"github.com/iho/gobank/internal/infrastructure/retry"
	"github.com/iho/gobank/internal/usecase"
)

const limiterIdleTimeout = 10 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	zerolog.TimeFieldFormat = time.RFC3339Nano
	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// Ledger
	store := memory.NewStore()
	accountRepo := memory.NewAccountRepository(store)
	transactionRepo := memory.NewTransactionRepository(store)

	accountUC := usecase.NewAccountUseCase(accountRepo, auth.NewBcryptHasher(cfg.BcryptCost), m)
	transactionUC := usecase.NewTransactionUseCase(memory.NewTxManager(store), accountRepo, transactionRepo, m)
	ledgerUC := usecase.NewLedgerUseCase(memory.NewLedgerRepository(store))

	if cfg.SeedAccounts {
		if err := usecase.Seed(ctx, accountUC, usecase.DefaultSeedAccounts, log.Logger); err != nil {
			log.Fatal().Err(err).Msg("failed to seed accounts")
		}
	}

	// Authentication
	secret, err := resolveJWTSecret(cfg, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid authentication configuration")
	}
	jwtManager := auth.NewJWTManager(secret, cfg.JWTExpiration)

	// Connect to Redis
	var (
		redisClient      *goredis.Client
		idempotencyStore usecase.IdempotencyStore
		denylist         usecase.TokenDenylist
	)
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL, retry.New(log.Logger))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")

		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		denylist = redisRepo.NewTokenDenylist(redisClient)
	} else {
		log.Warn().Msg("REDIS_URL not set; idempotency replay and logout are disabled")
	}

	// Rate limiting
	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m)
		go cleanupLimiters(ctx, rateLimiter, log.Logger)
	}

	// Transaction events
	if cfg.EventsEnabled {
		publisher, closePublisher, err := newPublisher(cfg, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create event publisher")
		}
		defer closePublisher()

		worker := eventpublisher.NewEventPublisher(eventpublisher.Config{
			Source:    transactionRepo,
			Publisher: publisher,
			Retrier:   retry.New(log.Logger),
			Metrics:   m,
			Logger:    log.Logger.With().Str("component", "event_publisher").Logger(),
			BatchSize: cfg.EventBatchSize,
			Interval:  cfg.EventPublishInterval,
		})
		go func() {
			if err := worker.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("event publisher stopped")
			}
		}()
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     handler.NewAccountHandler(accountUC),
		AuthHandler:        handler.NewAuthHandler(accountUC, jwtManager, denylist, m, log.Logger),
		TransactionHandler: handler.NewTransactionHandler(transactionUC, accountUC),
		LedgerHandler:      handler.NewLedgerHandler(ledgerUC),
		HealthHandler:      handler.NewHealthHandler(redisClient),
		TokenVerifier:      jwtManager,
		TokenDenylist:      denylist,
		AuthEnabled:        cfg.AuthEnabled,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		RateLimiter:        rateLimiter,
		Metrics:            m,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		Logger:             log.Logger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("port", cfg.HTTPPort).
			Bool("auth_enabled", cfg.AuthEnabled).
			Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	stop()

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// resolveJWTSecret returns the configured signing secret. Without one, tokens
// are signed with a per-process random secret and do not survive a restart.
func resolveJWTSecret(cfg *config.Config, logger zerolog.Logger) (string, error) {
	if cfg.JWTSecret != "" {
		return cfg.JWTSecret, nil
	}
	if cfg.AuthEnabled {
		return "", errors.New("JWT_SECRET is required when AUTH_ENABLED is set")
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate JWT secret: %w", err)
	}

	logger.Warn().Msg("JWT_SECRET not set; using a random secret for this process")
	return hex.EncodeToString(buf), nil
}

// newPublisher returns the Kafka publisher when brokers are configured and the
// log publisher otherwise, with a function that releases it.
func newPublisher(cfg *config.Config, logger zerolog.Logger) (eventpublisher.Publisher, func() error, error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info().Msg("KAFKA_BROKERS not set; publishing transaction events to the log")
		return eventpublisher.NewLogPublisher(logger), func() error { return nil }, nil
	}

	kafka, err := eventpublisher.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		return nil, nil, err
	}

	logger.Info().
		Strs("brokers", cfg.KafkaBrokers).
		Str("topic", cfg.KafkaTopic).
		Msg("publishing transaction events to kafka")
	return kafka, kafka.Close, nil
}

// cleanupLimiters drops idle per-client limiters until ctx is done.
func cleanupLimiters(ctx context.Context, rl *middleware.RateLimiter, logger zerolog.Logger) {
	ticker := time.NewTicker(limiterIdleTimeout)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := rl.CleanupLimiters(limiterIdleTimeout); removed > 0 {
				logger.Debug().Int("removed", removed).Msg("cleaned up idle rate limiters")
			}
		}
	}
}
