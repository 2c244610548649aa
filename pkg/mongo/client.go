package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var (
	ErrConnect     = errors.New("mongo: connect failed")
	ErrUnavailable = errors.New("mongo: deployment unavailable")
)

func clientOptions(cfg Config) *options.ClientOptions {
	return options.Client().
		ApplyURI(cfg.ConnectionURL).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetRetryWrites(true).
		SetRetryReads(true)
}

// Connect returns a client once the primary answers a ping. Up to
// RetryAttempts tries are made, RetryInterval apart.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, error) {
	opts := clientOptions(cfg)

	var lastErr error
	for attempt := 1; ; attempt++ {
		client, err := mongo.Connect(opts)
		if err == nil {
			if err = client.Ping(ctx, nil); err == nil {
				return client, nil
			}
			_ = client.Disconnect(context.WithoutCancel(ctx))
		}
		lastErr = err
		if attempt >= cfg.RetryAttempts {
			return nil, errors.Join(ErrConnect, lastErr)
		}

		timer := time.NewTimer(cfg.RetryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, errors.Join(ErrConnect, ctx.Err())
		case <-timer.C:
		}
	}
}

// ConnectDatabase is Connect followed by selecting cfg.Database.
func ConnectDatabase(ctx context.Context, cfg Config) (*mongo.Database, error) {
	client, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return client.Database(cfg.Database), nil
}

// Probe turns a client into a readiness check.
func Probe(client *mongo.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx, nil); err != nil {
			return errors.Join(ErrUnavailable, err)
		}
		return nil
	}
}
