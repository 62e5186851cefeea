package imageedit

import "log/slog"

// Option configures a Session.
type Option func(*Session)

// WithMaxWidth sets the widest working raster. Values below 1 are ignored.
func WithMaxWidth(w int) Option {
	return func(s *Session) {
		if w > 0 {
			s.maxWidth = w
		}
	}
}

// WithHistoryLimit bounds the overlay undo stack. Values below 1 are ignored.
func WithHistoryLimit(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.history.limit = n
		}
	}
}

// WithFontBank shares a font bank between sessions that never draw at the
// same time.
func WithFontBank(b *FontBank) Option {
	return func(s *Session) {
		if b != nil {
			s.fonts = b
		}
	}
}

// WithLogger logs state transitions at debug level.
func WithLogger(log *slog.Logger) Option {
	return func(s *Session) {
		s.log = log
	}
}
