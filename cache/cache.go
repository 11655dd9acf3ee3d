package cache

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const checkoutKeyTTL = 2 * time.Minute

// Client guards checkout against double submission with per-user SETNX keys.
// A nil *Client is valid and disables the guard, so Redis stays optional.
type Client struct {
	rdb *redis.Client
}

// NewFromEnv connects using REDIS_ADDR (and optional REDIS_PASSWORD). Returns
// nil when REDIS_ADDR is unset.
func NewFromEnv() *Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("⚠️ Redis unreachable at %s, checkout idempotency guard disabled: %v", addr, err)
		return nil
	}
	return &Client{rdb: rdb}
}

// AcquireCheckout sets the per-user checkout key. Returns false when a
// checkout for this user is already in flight.
func (c *Client) AcquireCheckout(ctx context.Context, userID string) (bool, error) {
	if c == nil {
		return true, nil
	}
	return c.rdb.SetNX(ctx, "checkout:"+userID, 1, checkoutKeyTTL).Result()
}

// ReleaseCheckout frees the key early so a failed checkout can be retried
// without waiting for the TTL.
func (c *Client) ReleaseCheckout(ctx context.Context, userID string) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, "checkout:"+userID).Err(); err != nil {
		log.Printf("failed to release checkout key for %s: %v", userID, err)
	}
}
