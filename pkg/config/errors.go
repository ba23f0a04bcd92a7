package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrLoadingEnvFile is returned when an explicit env file cannot be read
	ErrLoadingEnvFile = errors.New("failed to load env file")

	// ErrNoFiles is returned when LoadFiles is called without file names
	ErrNoFiles = errors.New("no env files provided")

	// ErrNilPointer is returned when a nil pointer is provided to a loader
	ErrNilPointer = errors.New("nil pointer provided to config loader")
)
