package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist records revoked token IDs until their natural expiry.
type Denylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type redisDenylist struct {
	client *redis.Client
}

// NewRedisDenylist connects to redis and returns a denylist backed by it.
func NewRedisDenylist(url string) (Denylist, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &redisDenylist{client: client}, nil
}

func (d *redisDenylist) key(jti string) string {
	return "revoked_token:" + jti
}

func (d *redisDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return d.client.Set(ctx, d.key(jti), "1", ttl).Err()
}

func (d *redisDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// noopDenylist never revokes anything. Used when redis is not configured;
// tokens then simply age out at their 24h expiry.
type noopDenylist struct{}

func NewNoopDenylist() Denylist {
	return noopDenylist{}
}

func (noopDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return nil
}

func (noopDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return false, nil
}
