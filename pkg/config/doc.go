// Package config fills configuration structs from environment variables.
//
// Values come from the process environment, optionally seeded from a .env
// file, and are parsed with caarlos0/env struct tags. Each struct type is
// parsed once and cached, so every package can ask for its own section
// without re-reading the environment:
//
//	type Config struct {
//		APIKey string        `env:"OPENAI_API_KEY"`
//		Timeout time.Duration `env:"IMAGEGEN_TIMEOUT" envDefault:"60s"`
//	}
//
//	cfg, err := config.Load[Config]()
package config
