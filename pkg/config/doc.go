// Package config loads configuration structs from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
// env files are merged into the process environment first, then the struct
// is populated from `env` / `envDefault` tags.
//
// # Usage
//
//	type ServerConfig struct {
//		Addr        string `env:"SCHEMAD_ADDR" envDefault:":8080"`
//		Definitions string `env:"SCHEMAD_DEFINITIONS,required"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// LoadFiles reads explicit env files instead of the default .env, and
// LoadWithPrefix restricts parsing to variables carrying a prefix.
//
// # Error Handling
//
// Parse failures wrap ErrParsingConfig and unreadable env files wrap
// ErrLoadingEnvFile, both joined with the underlying library error so
// errors.Is works on either.
package config
