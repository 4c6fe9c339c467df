package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/iho/gobank/internal/infrastructure/retry"
)

// NewClient creates a new Redis client. When retrier is non-nil the initial
// ping is retried with backoff.
func NewClient(ctx context.Context, redisURL string, retrier *retry.Retrier) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ping := func() error {
		return client.Ping(ctx).Err()
	}

	if retrier != nil {
		err = retrier.Retry(ctx, "redis_ping", ping)
	} else {
		err = ping()
	}

	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
