package config_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fsmkit/pkg/config"
)

type defaultsConfig struct {
	Addr    string   `env:"CFG_TEST_ADDR" envDefault:":8080"`
	Workers int      `env:"CFG_TEST_WORKERS" envDefault:"4"`
	Debug   bool     `env:"CFG_TEST_DEBUG" envDefault:"true"`
	Fields  []string `env:"CFG_TEST_FIELDS" envSeparator:","`
}

type requiredConfig struct {
	Required string `env:"CFG_TEST_REQUIRED,required"`
}

type validatedConfig struct {
	Backend string `env:"CFG_TEST_BACKEND" envDefault:"memory"`
}

func (c *validatedConfig) Validate() error {
	switch c.Backend {
	case "memory", "postgres":
		return nil
	}
	return errors.New("unknown backend " + c.Backend)
}

type fileConfig struct {
	Value    string `env:"CFG_TEST_FILE_VALUE"`
	Priority string `env:"CFG_TEST_PRIORITY"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults and overrides", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("CFG_TEST_WORKERS", "8")
		t.Setenv("CFG_TEST_FIELDS", "status,review")

		var cfg defaultsConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, 8, cfg.Workers)
		assert.True(t, cfg.Debug)
		assert.Equal(t, []string{"status", "review"}, cfg.Fields)
	})

	t.Run("cached per type", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("CFG_TEST_ADDR", ":9000")

		var first defaultsConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("CFG_TEST_ADDR", ":9001")
		var second defaultsConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, ":9000", second.Addr)

		config.ResetCache()
		var third defaultsConfig
		require.NoError(t, config.Load(&third))
		assert.Equal(t, ":9001", third.Addr)
	})

	t.Run("missing required value", func(t *testing.T) {
		config.ResetCache()

		var cfg requiredConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("validate hook", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("CFG_TEST_BACKEND", "sqlite")

		var cfg validatedConfig
		err := config.Load(&cfg)
		require.ErrorIs(t, err, config.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "unknown backend sqlite")
	})

	t.Run("nil pointer", func(t *testing.T) {
		var cfg *defaultsConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})
}

func TestMustLoad(t *testing.T) {
	config.ResetCache()

	var cfg requiredConfig
	assert.Panics(t, func() { config.MustLoad(&cfg) })
}

func TestLoadEnv(t *testing.T) {
	config.ResetCache()
	t.Setenv("CFG_TEST_PRIORITY", "process")
	t.Setenv("CFG_TEST_FILE_VALUE", "")

	require.NoError(t, config.LoadEnv("testdata/.env.test"))

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "process", cfg.Priority)

	err := config.LoadEnv("testdata/.env.missing")
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}
