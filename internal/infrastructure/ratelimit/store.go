package ratelimit

import (
	"context"
	"time"
)

// Store counts requests per key.
// Increment must be atomic: concurrent calls for one key never lose an update.
type Store interface {
	// Increment adds one to key and returns the new count.
	// The key expires ttl after it was first created.
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)
}
