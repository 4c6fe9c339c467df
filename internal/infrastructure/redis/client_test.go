package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"

	"github.com/iho/gobank/internal/infrastructure/retry"
)

func TestNewClientSuccess(t *testing.T) {
	s := miniredis.RunT(t)
	defer s.Close()

	ctx := context.Background()
	client, err := NewClient(ctx, fmt.Sprintf("redis://%s", s.Addr()), nil)
	if err != nil {
		t.Fatalf("expected client, got error: %v", err)
	}
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}

func TestNewClientInvalidURL(t *testing.T) {
	_, err := NewClient(context.Background(), "://bad-url", nil)
	if err == nil {
		t.Fatalf("expected error for invalid URL")
	}
}

func TestNewClientPingFailure(t *testing.T) {
	s := miniredis.RunT(t)
	url := fmt.Sprintf("redis://%s", s.Addr())
	s.Close() // close before attempting to connect

	_, err := NewClient(context.Background(), url, nil)
	if err == nil {
		t.Fatalf("expected ping error when server is down")
	}
}

func TestNewClientRetriesUntilGivingUp(t *testing.T) {
	s := miniredis.RunT(t)
	url := fmt.Sprintf("redis://%s", s.Addr())
	s.Close()

	r := retry.New(zerolog.Nop())
	r.MaxRetries = 2
	r.InitialInterval = time.Millisecond
	r.MaxInterval = time.Millisecond

	_, err := NewClient(context.Background(), url, r)
	if err == nil {
		t.Fatalf("expected error after exhausting retries")
	}
}
