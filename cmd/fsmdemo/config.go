package main

import (
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/fsmkit/pkg/clientip"
	"github.com/dmitrymomot/fsmkit/pkg/config"
	"github.com/dmitrymomot/fsmkit/pkg/logger"
	"github.com/dmitrymomot/fsmkit/pkg/requestid"
)

// Store backends.
const (
	backendMemory   = "memory"
	backendPostgres = "postgres"
	backendRedis    = "redis"
	backendMongo    = "mongo"
)

type appConfig struct {
	Env          string `env:"APP_ENV" envDefault:"development"`
	Service      string `env:"APP_SERVICE" envDefault:"fsmdemo"`
	Backend      string `env:"STORE_BACKEND" envDefault:"memory"`
	ExposeErrors bool   `env:"EXPOSE_INTERNAL_ERRORS" envDefault:"false"`
	Index        bool   `env:"TRANSITION_INDEX" envDefault:"true"`
	Metrics      bool   `env:"METRICS_ENABLED" envDefault:"true"`
	AcceptDrafts bool   `env:"ACCEPT_DRAFTS" envDefault:"true"`
}

func (c appConfig) Validate() error {
	switch c.Backend {
	case backendMemory, backendPostgres, backendRedis, backendMongo:
		return nil
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Backend)
	}
}

func loadEnvFile(path string) error {
	return config.LoadEnv(path)
}

func loadAppConfig() (appConfig, error) {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cfg appConfig) *slog.Logger {
	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Service),
		logger.WithContextExtractors(requestid.LogExtractor(), clientip.LogExtractor()),
	)
	logger.SetAsDefault(log)
	return log
}
