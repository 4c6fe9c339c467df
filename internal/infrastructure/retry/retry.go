// Package retry runs operations with exponential backoff.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// Retrier retries an operation with exponential backoff while Retryable
// reports the error as transient.
type Retrier struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	Retryable       func(error) bool
	Logger          zerolog.Logger
}

// New creates a retrier with default settings that retries every error.
func New(logger zerolog.Logger) *Retrier {
	return &Retrier{
		MaxRetries:      5,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		MaxElapsedTime:  30 * time.Second,
		Logger:          logger,
	}
}

// Retry executes operation until it succeeds, returns a non-retryable error,
// exhausts MaxRetries, or ctx is done.
func (r *Retrier) Retry(ctx context.Context, name string, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.InitialInterval
	b.MaxInterval = r.MaxInterval
	b.MaxElapsedTime = r.MaxElapsedTime

	retryCount := 0

	return backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		if r.Retryable != nil && !r.Retryable(err) {
			return backoff.Permanent(err)
		}

		retryCount++
		if retryCount > r.MaxRetries {
			return backoff.Permanent(err)
		}

		r.Logger.Warn().
			Err(err).
			Str("operation", name).
			Int("retry", retryCount).
			Msg("retryable error, retrying")

		return err
	}, backoff.WithContext(b, ctx))
}
