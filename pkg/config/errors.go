package config

import "errors"

var (
	// ErrParse is returned when the environment cannot be parsed into the target struct.
	ErrParse = errors.New("config: failed to parse environment")
	// ErrDotenv is returned when an explicitly requested .env file cannot be read.
	ErrDotenv = errors.New("config: failed to load dotenv file")
)
