package webhook

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hookbase/hookbase-go/pkg/cache"
)

// ReplayGuard remembers accepted webhook ids so a captured delivery cannot be
// replayed while its timestamp is still inside the tolerance window.
type ReplayGuard interface {
	// Claim records id for ttl. It returns false when id was already claimed
	// and has not expired yet.
	Claim(ctx context.Context, id string, ttl time.Duration) (bool, error)
}

// MemoryReplayGuard keeps claimed ids in process memory. Suitable for a single
// instance; use RedisReplayGuard when deliveries are load-balanced.
type MemoryReplayGuard struct {
	seen *cache.ExpiringSet[string]
}

// NewMemoryReplayGuard remembers up to capacity ids.
func NewMemoryReplayGuard(capacity int) *MemoryReplayGuard {
	return &MemoryReplayGuard{seen: cache.NewExpiringSet[string](capacity)}
}

// Claim implements ReplayGuard. It never returns an error.
func (g *MemoryReplayGuard) Claim(_ context.Context, id string, ttl time.Duration) (bool, error) {
	return g.seen.Claim(id, ttl), nil
}

// RedisReplayGuard shares claimed ids between instances through Redis.
type RedisReplayGuard struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisReplayGuard stores ids under prefix+id.
func NewRedisReplayGuard(client redis.UniversalClient, prefix string) *RedisReplayGuard {
	return &RedisReplayGuard{client: client, prefix: prefix}
}

// Claim implements ReplayGuard with SET NX, so the first instance to see id
// wins. Redis failures are returned unchanged.
func (g *RedisReplayGuard) Claim(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	return g.client.SetNX(ctx, g.prefix+id, 1, ttl).Result()
}

var (
	_ ReplayGuard = (*MemoryReplayGuard)(nil)
	_ ReplayGuard = (*RedisReplayGuard)(nil)
)
