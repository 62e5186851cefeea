package httpserver

import "log/slog"

// Option adjusts a Server.
type Option func(*Server)

// WithLogger sets the logger for lifecycle records.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithOnStart registers a callback run right before the listener starts.
func WithOnStart(fn func()) Option {
	return func(s *Server) {
		if fn != nil {
			s.onStart = append(s.onStart, fn)
		}
	}
}

// WithOnStop registers a callback run after shutdown completes.
func WithOnStop(fn func()) Option {
	return func(s *Server) {
		if fn != nil {
			s.onStop = append(s.onStop, fn)
		}
	}
}
