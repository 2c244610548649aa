// Package redis connects to Redis with go-redis and exposes a readiness probe.
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Connect retries the initial ping so a process started next to a Redis
// container does not fail while the server is still booting. Errors wrap the
// package sentinels with errors.Join.
package redis
