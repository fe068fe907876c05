// Package redis connects to the Redis server used for cross-instance webhook
// replay protection.
//
// Connect retries the initial ping according to Config, and Healthcheck
// returns a probe suitable for readiness endpoints. The resulting client is
// handed to webhook.NewRedisReplayGuard:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	guard := webhook.NewRedisReplayGuard(client, cfg.KeyPrefix)
//
// Config fields are populated from the environment by pkg/config.
package redis
