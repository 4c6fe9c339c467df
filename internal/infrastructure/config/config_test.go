package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/iho/gobank/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.RedisURL != "" {
		t.Fatalf("expected redis to be disabled by default, got %q", cfg.RedisURL)
	}

	if cfg.JWTSecret != "" {
		t.Fatalf("expected JWT secret default to be empty, got %q", cfg.JWTSecret)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if !cfg.SeedAccounts {
		t.Fatalf("expected seed accounts to be enabled by default")
	}

	if cfg.BcryptCost != 10 {
		t.Fatalf("expected default bcrypt cost 10, got %d", cfg.BcryptCost)
	}

	if len(cfg.KafkaBrokers) != 0 {
		t.Fatalf("expected no kafka brokers by default, got %v", cfg.KafkaBrokers)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("JWT_SECRET", "top-secret")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("SEED_ACCOUNTS", "false")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("EVENT_PUBLISH_INTERVAL", "250ms")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.JWTSecret != "top-secret" || !cfg.AuthEnabled {
		t.Fatalf("expected auth settings to be set, got secret=%s enabled=%v", cfg.JWTSecret, cfg.AuthEnabled)
	}

	if cfg.SeedAccounts {
		t.Fatalf("expected seeding to be disabled")
	}

	if cfg.RateLimitRPS != 2.5 {
		t.Fatalf("expected rate limit override, got %v", cfg.RateLimitRPS)
	}

	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "kafka-2:9092" {
		t.Fatalf("expected two kafka brokers, got %v", cfg.KafkaBrokers)
	}

	if cfg.EventPublishInterval != 250*time.Millisecond {
		t.Fatalf("expected publish interval override, got %s", cfg.EventPublishInterval)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	original := os.Getenv("HTTP_READ_TIMEOUT")
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")
	t.Cleanup(func() {
		t.Setenv("HTTP_READ_TIMEOUT", original)
	})

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestLoadInvalidBool(t *testing.T) {
	t.Setenv("SEED_ACCOUNTS", "maybe")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid bool")
	}
}
