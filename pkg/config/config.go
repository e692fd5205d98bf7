// Package config loads typed configuration structs from environment
// variables.
//
// Fields are described with caarlos0/env tags. A .env file in the working
// directory, when present, is loaded once before the first parse and never
// overrides variables already set in the process environment.
//
//	type App struct {
//		Env  string `env:"APP_ENV" envDefault:"development"`
//		Name string `env:"APP_NAME" envDefault:"varlayer"`
//	}
//
//	cfg, err := config.Load[App]()
package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsingConfig wraps every parse failure.
var ErrParsingConfig = errors.New("config: failed to parse environment variables")

var dotenvOnce sync.Once

// Load parses the process environment into a new T.
func Load[T any]() (T, error) {
	dotenvOnce.Do(func() {
		// A missing .env file is the normal case outside development.
		_ = godotenv.Load()
	})

	var v T
	if err := env.Parse(&v); err != nil {
		return v, errors.Join(ErrParsingConfig, err)
	}
	return v, nil
}

// LoadFrom parses the given variables into a new T, ignoring the process
// environment and any .env file.
func LoadFrom[T any](vars map[string]string) (T, error) {
	var v T
	if err := env.ParseWithOptions(&v, env.Options{Environment: vars}); err != nil {
		return v, errors.Join(ErrParsingConfig, err)
	}
	return v, nil
}

// MustLoad is Load for configuration the process cannot start without.
func MustLoad[T any]() T {
	v, err := Load[T]()
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return v
}
