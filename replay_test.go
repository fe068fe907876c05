package hookbase_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hookbase "github.com/hookbase/hookbase-go"
	"github.com/hookbase/hookbase-go/pkg/config"
	"github.com/hookbase/hookbase-go/pkg/redis"
)

func TestConnectReplayGuard(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	cfg, err := hookbase.LoadRedisConfig(config.WithEnvironment(map[string]string{
		"HOOKBASE_REDIS_URL":        "redis://" + mr.Addr() + "/0",
		"HOOKBASE_REDIS_KEY_PREFIX": "svc:",
	}))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.RetryAttempts)

	guard, client, err := hookbase.ConnectReplayGuard(context.Background(), cfg)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	ok, err := guard.Claim(context.Background(), "msg_1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, mr.Exists("svc:msg_1"))

	ok, err = guard.Claim(context.Background(), "msg_1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConnectReplayGuard_Unreachable(t *testing.T) {
	t.Parallel()

	_, _, err := hookbase.ConnectReplayGuard(context.Background(), redis.Config{
		ConnectionURL:  "redis://127.0.0.1:1/0",
		RetryAttempts:  1,
		ConnectTimeout: time.Second,
	})
	assert.ErrorIs(t, err, redis.ErrRedisNotReady)
}
