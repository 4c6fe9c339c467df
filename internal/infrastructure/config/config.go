package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// Redis (optional - leave empty to disable idempotency replay and logout)
	RedisURL string `env:"REDIS_URL" envDefault:""`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Idempotency
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	// Authentication (optional - leave empty to disable)
	JWTSecret     string        `env:"JWT_SECRET"     envDefault:""`
	JWTExpiration time.Duration `env:"JWT_EXPIRATION" envDefault:"24h"`
	AuthEnabled   bool          `env:"AUTH_ENABLED"   envDefault:"false"`
	BcryptCost    int           `env:"BCRYPT_COST"    envDefault:"10"`

	// Sample accounts created at startup
	SeedAccounts bool `env:"SEED_ACCOUNTS" envDefault:"true"`

	// Rate limiting (0 disables)
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"100"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"200"`

	// Transaction events
	EventsEnabled        bool          `env:"EVENTS_ENABLED"         envDefault:"false"`
	KafkaBrokers         []string      `env:"KAFKA_BROKERS"          envSeparator:","`
	KafkaTopic           string        `env:"KAFKA_TOPIC"            envDefault:"gobank.transactions"`
	EventPublishInterval time.Duration `env:"EVENT_PUBLISH_INTERVAL" envDefault:"1s"`
	EventBatchSize       int           `env:"EVENT_BATCH_SIZE"       envDefault:"100"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
