package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/fsmkit/internal/article"
	"github.com/dmitrymomot/fsmkit/pkg/config"
	"github.com/dmitrymomot/fsmkit/pkg/httpserver"
	"github.com/dmitrymomot/fsmkit/pkg/logger"
	"github.com/dmitrymomot/fsmkit/pkg/mongo"
	"github.com/dmitrymomot/fsmkit/pkg/pg"
	"github.com/dmitrymomot/fsmkit/pkg/redis"
	"github.com/dmitrymomot/fsmkit/pkg/store"
)

// backend is an opened article store with its readiness checks and the
// function releasing its connections.
type backend struct {
	store  store.Store[*article.Article]
	checks map[string]httpserver.HealthCheck
	close  func()
}

func openBackend(ctx context.Context, cfg appConfig, log *slog.Logger) (*backend, error) {
	log = log.With(logger.Component("store"), slog.String("backend", cfg.Backend))

	switch cfg.Backend {
	case backendPostgres:
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return nil, err
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx, pool, store.Migrations, pgCfg, log); err != nil {
			pool.Close()
			return nil, err
		}
		log.InfoContext(ctx, "store ready")
		return &backend{
			store:  store.NewPostgres(pool, article.Resource, article.Key),
			checks: map[string]httpserver.HealthCheck{"postgres": pg.Probe(pool)},
			close:  pool.Close,
		}, nil

	case backendRedis:
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return nil, err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, err
		}
		log.InfoContext(ctx, "store ready")
		return &backend{
			store:  store.NewRedis(client, redisCfg.KeyPrefix, article.Resource, article.Key),
			checks: map[string]httpserver.HealthCheck{"redis": redis.Probe(client)},
			close: func() {
				if err := client.Close(); err != nil {
					log.Error("close redis", logger.Error(err))
				}
			},
		}, nil

	case backendMongo:
		var mongoCfg mongo.Config
		if err := config.Load(&mongoCfg); err != nil {
			return nil, err
		}
		db, err := mongo.ConnectDatabase(ctx, mongoCfg)
		if err != nil {
			return nil, err
		}
		client := db.Client()
		log.InfoContext(ctx, "store ready")
		return &backend{
			store:  store.NewMongo(db.Collection(article.Resource), article.Key),
			checks: map[string]httpserver.HealthCheck{"mongo": mongo.Probe(client)},
			close: func() {
				if err := client.Disconnect(context.Background()); err != nil {
					log.Error("close mongo", logger.Error(err))
				}
			},
		}, nil

	case backendMemory:
		log.InfoContext(ctx, "store ready")
		return &backend{
			store:  store.NewMemory(article.Key),
			checks: map[string]httpserver.HealthCheck{},
			close:  func() {},
		}, nil
	}

	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
