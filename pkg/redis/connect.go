package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrInvalidURL  = errors.New("redis: invalid connection url")
	ErrUnavailable = errors.New("redis: server unavailable")
)

// Connect builds a client from cfg.ConnectionURL and returns it once the
// server answers PING. Failed attempts are retried every RetryInterval, all
// within ConnectTimeout.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	client := redis.NewClient(opts)
	ticker := time.NewTicker(max(cfg.RetryInterval, time.Millisecond))
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		err := client.Ping(ctx).Err()
		if err == nil {
			return client, nil
		}
		if attempt >= cfg.RetryAttempts {
			_ = client.Close()
			return nil, errors.Join(ErrUnavailable, err)
		}
		select {
		case <-ctx.Done():
			_ = client.Close()
			return nil, errors.Join(ErrUnavailable, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Probe turns a client into a readiness check.
func Probe(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrUnavailable, err)
		}
		return nil
	}
}
