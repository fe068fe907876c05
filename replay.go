package hookbase

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/hookbase/hookbase-go/pkg/config"
	"github.com/hookbase/hookbase-go/pkg/redis"
	"github.com/hookbase/hookbase-go/pkg/webhook"
)

// LoadRedisConfig reads HOOKBASE_REDIS_* variables, e.g. HOOKBASE_REDIS_URL.
func LoadRedisConfig(opts ...config.Option) (redis.Config, error) {
	return config.Load[redis.Config](append([]config.Option{config.WithPrefix(EnvPrefix)}, opts...)...)
}

// ConnectReplayGuard connects to Redis and returns a guard that shares
// accepted webhook ids across every instance using the same cfg.KeyPrefix.
// The caller owns the returned client and should close it on shutdown.
func ConnectReplayGuard(ctx context.Context, cfg redis.Config) (*webhook.RedisReplayGuard, *goredis.Client, error) {
	client, err := redis.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("hookbase: replay guard: %w", err)
	}
	return webhook.NewRedisReplayGuard(client, cfg.KeyPrefix), client, nil
}
