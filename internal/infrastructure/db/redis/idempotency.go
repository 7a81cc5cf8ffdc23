package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idemTTL = 24 * time.Hour

// IdempotencyChecker answers whether a task-creation Idempotency-Key has been
// used before. It is a fast path; the tasks table's unique key column remains
// authoritative, so an expired or lost entry only costs one extra store read.
// Key format: idem:<owner_id>:<key>
type IdempotencyChecker struct {
	client *redis.Client
}

// NewIdempotencyChecker creates an IdempotencyChecker wrapping the given client.
func NewIdempotencyChecker(client *redis.Client) *IdempotencyChecker {
	return &IdempotencyChecker{client: client}
}

// Seen reports whether this owner has already created a task with this key.
func (c *IdempotencyChecker) Seen(ctx context.Context, ownerID int64, key string) (bool, error) {
	n, err := c.client.Exists(ctx, c.key(ownerID, key)).Result()
	if err != nil {
		return false, fmt.Errorf("idempotency check: %w", err)
	}
	return n > 0, nil
}

// Mark records the key as used (expires after idemTTL).
func (c *IdempotencyChecker) Mark(ctx context.Context, ownerID int64, key string) error {
	return c.client.Set(ctx, c.key(ownerID, key), "1", idemTTL).Err()
}

func (c *IdempotencyChecker) key(ownerID int64, key string) string {
	return fmt.Sprintf("idem:%d:%s", ownerID, key)
}
