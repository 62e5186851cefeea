package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrymomot/emailcraft/pkg/logger"
)

// Server owns one http.Server for the lifetime of Run.
type Server struct {
	cfg     Config
	log     *slog.Logger
	onStart []func()
	onStop  []func()

	mu       sync.Mutex
	srv      *http.Server
	stopOnce sync.Once
}

// New returns a Server for cfg. Zero durations in cfg leave the matching
// http.Server timeout disabled.
func New(cfg Config, opts ...Option) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	s := &Server{cfg: cfg, log: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run serves h until ctx is cancelled, a termination signal arrives or the
// listener fails. A clean shutdown returns nil.
func (s *Server) Run(ctx context.Context, h http.Handler) error {
	if h == nil {
		h = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.srv = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           h,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
	}
	srv := s.srv
	s.mu.Unlock()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, fn := range s.onStart {
		fn()
	}
	s.log.Info("http server starting", logger.Component("httpserver"), slog.String("addr", s.cfg.Addr))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	var err error
	select {
	case <-ctx.Done():
		if shutdownErr := s.Shutdown(context.Background()); shutdownErr != nil {
			return shutdownErr
		}
		err = <-errCh
	case err = <-errCh:
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrStart, err)
	}
	return nil
}

// Shutdown drains in-flight requests within the configured timeout.
// Calling it more than once, or before Run, is a no-op.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	var err error
	s.stopOnce.Do(func() {
		if s.cfg.ShutdownTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
			defer cancel()
		}
		err = srv.Shutdown(ctx)
		for _, fn := range s.onStop {
			fn()
		}
		s.log.Info("http server stopped", logger.Component("httpserver"))
	})
	if err != nil {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}
