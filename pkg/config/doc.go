// Package config loads typed configuration from environment variables.
//
// Config structs declare their variables with caarlos0/env tags. Load parses
// a struct once per type and caches the result; a struct that implements
// Validator is checked right after parsing, so bad settings stop the process
// at startup instead of surfacing on the first request.
//
//	var cfg httpserver.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Error("load config", logger.Error(err))
//		os.Exit(1)
//	}
//
// A .env file in the working directory is read on first use. LoadEnv reads
// additional files explicitly. Neither overrides variables already present in
// the process environment.
package config
