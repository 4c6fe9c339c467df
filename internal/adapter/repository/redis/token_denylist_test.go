package redis

import (
	"context"
	"testing"
	"time"
)

func TestTokenDenylist_RevokeAndCheck(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	denylist := NewTokenDenylist(client)
	ctx := context.Background()

	revoked, err := denylist.IsRevoked(ctx, "jti-1")
	if err != nil || revoked {
		t.Fatalf("expected fresh token to be valid, got revoked=%v err=%v", revoked, err)
	}

	if err := denylist.Revoke(ctx, "jti-1", time.Minute); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	revoked, err = denylist.IsRevoked(ctx, "jti-1")
	if err != nil || !revoked {
		t.Fatalf("expected token to be revoked, got revoked=%v err=%v", revoked, err)
	}

	if ttl := mr.TTL(denylist.prefix + "jti-1"); ttl != time.Minute {
		t.Fatalf("expected ttl of one minute, got %s", ttl)
	}
}

func TestTokenDenylist_EntriesExpireWithToken(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	denylist := NewTokenDenylist(client)
	ctx := context.Background()

	if err := denylist.Revoke(ctx, "jti-2", time.Second); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	mr.FastForward(2 * time.Second)

	revoked, err := denylist.IsRevoked(ctx, "jti-2")
	if err != nil || revoked {
		t.Fatalf("expected entry to expire, got revoked=%v err=%v", revoked, err)
	}
}

func TestTokenDenylist_ExpiredTokenIsNoop(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	denylist := NewTokenDenylist(client)

	if err := denylist.Revoke(context.Background(), "jti-3", 0); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	if mr.Exists(denylist.prefix + "jti-3") {
		t.Fatalf("expected no key for an already-expired token")
	}
}
