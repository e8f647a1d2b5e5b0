package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var incrementScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RedisStore shares counters between API instances
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a store on top of an existing client
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client, prefix: "ratelimit:"}
}

// Increment implements Store. The script runs atomically on the server, so a
// key is never left without a TTL.
func (rs *RedisStore) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := incrementScript.Run(ctx, rs.client, []string{rs.prefix + key}, ttl.Milliseconds()).Int64()
	if err != nil {
		return 0, fmt.Errorf("redis increment %s: %w", key, err)
	}
	return count, nil
}
