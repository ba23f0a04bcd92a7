package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// Load parses environment variables into v using `env` and `envDefault`
// struct tags. The default .env file in the working directory is read once
// per process before the first parse; a missing file is not an error.
//
// Example:
//
//	var cfg schema.Config
//	if err := config.Load(&cfg); err != nil {
//		// Handle error
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		_ = godotenv.Load()
	})
	return parse(v, env.Options{})
}

// LoadWithPrefix works like Load but only considers variables starting with
// prefix, for example "SCHEMAD_".
func LoadWithPrefix[T any](v *T, prefix string) error {
	defaultEnvLoaded.Do(func() {
		_ = godotenv.Load()
	})
	return parse(v, env.Options{Prefix: prefix})
}

// LoadFiles reads the given env files into the process environment without
// overriding variables that are already set, then parses v.
func LoadFiles[T any](v *T, files ...string) error {
	if len(files) == 0 {
		return ErrNoFiles
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return parse(v, env.Options{})
}

// MustLoad works like Load but panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}

func parse[T any](v *T, opts env.Options) error {
	if v == nil {
		return ErrNilPointer
	}
	if err := env.ParseWithOptions(v, opts); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}
