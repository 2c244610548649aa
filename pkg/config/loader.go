package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	ErrParsingConfig  = errors.New("config: parse environment")
	ErrInvalidConfig  = errors.New("config: invalid")
	ErrLoadingEnvFile = errors.New("config: load env file")
	ErrNilPointer     = errors.New("config: nil target")
)

// Validator is implemented by config structs that check their own invariants.
// Load calls Validate after parsing, so a bad value fails at startup.
type Validator interface {
	Validate() error
}

// entry holds the parse result for one config type.
type entry struct {
	once  sync.Once
	value any
	err   error
}

var (
	cache sync.Map // reflect.Type -> *entry

	defaultEnvLoaded sync.Once
)

// Load parses environment variables into v based on its `env` struct tags.
// The first call also reads a .env file from the working directory when one
// exists. Each config type is parsed once; later calls for the same type get
// a copy of the cached value, and a failed parse is cached as well.
//
// Example:
//
//	type Config struct {
//		Addr    string `env:"HTTP_ADDR" envDefault:":8080"`
//		Backend string `env:"STORE_BACKEND" envDefault:"memory"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	defaultEnvLoaded.Do(func() {
		// The default .env file is optional.
		_ = godotenv.Load()
	})

	raw, _ := cache.LoadOrStore(reflect.TypeFor[T](), &entry{})
	e := raw.(*entry)
	e.once.Do(func() {
		var cfg T
		if err := env.Parse(&cfg); err != nil {
			e.err = errors.Join(ErrParsingConfig, err)
			return
		}
		if val, ok := any(&cfg).(Validator); ok {
			if err := val.Validate(); err != nil {
				e.err = errors.Join(ErrInvalidConfig, err)
				return
			}
		}
		e.value = cfg
	})

	if e.err != nil {
		return e.err
	}
	*v = e.value.(T)
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// LoadEnv reads the given .env files into the process environment without
// overriding variables that are already set. Unlike the implicit default
// file, a missing explicit file is an error.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// ResetCache drops every cached config so the next Load parses again.
// Intended for tests.
func ResetCache() {
	cache.Range(func(key, _ any) bool {
		cache.Delete(key)
		return true
	})
}
