package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist implements usecase.TokenDenylist using Redis keys that expire
// together with the revoked token.
type TokenDenylist struct {
	client *redis.Client
	prefix string
}

// NewTokenDenylist creates a new TokenDenylist.
func NewTokenDenylist(client *redis.Client) *TokenDenylist {
	return &TokenDenylist{
		client: client,
		prefix: "gobank:revoked:",
	}
}

// Revoke marks tokenID as revoked for ttl. A non-positive ttl is a no-op since
// the token has already expired.
func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, d.prefix+tokenID, "1", ttl).Err()
}

// IsRevoked reports whether tokenID has been revoked.
func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.prefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
