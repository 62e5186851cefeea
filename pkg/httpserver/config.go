package httpserver

import "time"

// Config is read from the environment by pkg/config.
type Config struct {
	Addr              string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"10s"`
	ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
	// Image generation responses stream through SSE, so writes get a generous budget.
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"120s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	// Proxy headers trusted for the client address, e.g. "X-Forwarded-For".
	TrustedIPHeaders []string `env:"HTTP_TRUSTED_IP_HEADERS"`
}
