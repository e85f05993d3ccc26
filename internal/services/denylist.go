package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DenylistKeyPrefix is the Redis key prefix for revoked token ids.
const DenylistKeyPrefix = "revoked_token:"

// TokenDenylist records token ids that were logged out before they expired.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisDenylist keeps one key per revoked token, expiring together with the token.
type RedisDenylist struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisDenylist(client *redis.Client) *RedisDenylist {
	return &RedisDenylist{client: client, now: time.Now}
}

func (d *RedisDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return nil
	}
	ttl := expiresAt.Sub(d.now())
	if ttl <= 0 {
		// Already expired; the gate rejects it anyway.
		return nil
	}
	return d.client.Set(ctx, DenylistKeyPrefix+tokenID, "1", ttl).Err()
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	count, err := d.client.Exists(ctx, DenylistKeyPrefix+tokenID).Result()
	return count > 0, err
}

// NoopDenylist is used when Redis is not configured. Logout then only clears the cookie.
type NoopDenylist struct{}

func (NoopDenylist) Revoke(context.Context, string, time.Time) error { return nil }

func (NoopDenylist) IsRevoked(context.Context, string) (bool, error) { return false, nil }
