package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func fastRetrier() *Retrier {
	r := New(zerolog.Nop())
	r.InitialInterval = time.Millisecond
	r.MaxInterval = 2 * time.Millisecond
	return r
}

func TestRetrySucceedsAfterTransientErrors(t *testing.T) {
	r := fastRetrier()

	attempts := 0
	err := r.Retry(context.Background(), "flaky", func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	r := fastRetrier()
	permanent := errors.New("permanent")
	r.Retryable = func(err error) bool { return !errors.Is(err, permanent) }

	attempts := 0
	err := r.Retry(context.Background(), "op", func() error {
		attempts++
		return permanent
	})

	if !errors.Is(err, permanent) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected a single attempt, got %d", attempts)
	}
}

func TestRetryGivesUpAfterMaxRetries(t *testing.T) {
	r := fastRetrier()
	r.MaxRetries = 2

	attempts := 0
	err := r.Retry(context.Background(), "op", func() error {
		attempts++
		return errors.New("down")
	})

	if err == nil {
		t.Fatalf("expected error")
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestRetryHonorsContext(t *testing.T) {
	r := fastRetrier()
	r.MaxRetries = 1000

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := r.Retry(ctx, "op", func() error {
		attempts++
		return errors.New("down")
	})

	if err == nil {
		t.Fatalf("expected error for cancelled context")
	}
	if attempts > 1 {
		t.Fatalf("expected at most one attempt after cancel, got %d", attempts)
	}
}
