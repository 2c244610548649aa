package pg

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrInvalidConfig = errors.New("pg: invalid connection config")
	ErrUnavailable   = errors.New("pg: database unavailable")
	ErrMigration     = errors.New("pg: migration failed")
)

// Connect opens a pool sized from cfg and waits until it answers a ping.
// Attempt n waits n*RetryInterval before the next one. A done ctx ends the
// wait early.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	applyPoolConfig(poolCfg, cfg)

	var lastErr error
	for attempt := 1; ; attempt++ {
		pool, err := open(ctx, poolCfg)
		if err == nil {
			return pool, nil
		}
		lastErr = err
		if attempt >= cfg.RetryAttempts {
			return nil, errors.Join(ErrUnavailable, lastErr)
		}

		timer := time.NewTimer(time.Duration(attempt) * cfg.RetryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, errors.Join(ErrUnavailable, ctx.Err())
		case <-timer.C:
		}
	}
}

// applyPoolConfig copies the positive values of cfg onto the pool config.
// Zero values keep the pgx defaults; a zero HealthCheckPeriod would make the
// pool's health check ticker panic.
func applyPoolConfig(dst *pgxpool.Config, cfg Config) {
	if cfg.MaxOpenConns > 0 {
		dst.MaxConns = cfg.MaxOpenConns
	}
	if cfg.MaxIdleConns > 0 {
		dst.MinConns = min(cfg.MaxIdleConns, dst.MaxConns)
	}
	if cfg.HealthCheckPeriod > 0 {
		dst.HealthCheckPeriod = cfg.HealthCheckPeriod
	}
	if cfg.MaxConnIdleTime > 0 {
		dst.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.MaxConnLifetime > 0 {
		dst.MaxConnLifetime = cfg.MaxConnLifetime
	}
}

func open(ctx context.Context, cfg *pgxpool.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Probe turns a pool into a readiness check.
func Probe(p Pinger) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := p.Ping(ctx); err != nil {
			return errors.Join(ErrUnavailable, err)
		}
		return nil
	}
}
