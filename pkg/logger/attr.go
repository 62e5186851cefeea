package logger

import "log/slog"

// Error records err under "error". A nil error yields an empty attribute,
// which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component names the package or subsystem emitting the record.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event names what happened.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Field records a template config path such as "colors.primary".
func Field(path string) slog.Attr {
	return slog.String("field", path)
}

// Slot records an image slot name such as "hero-image".
func Slot(name string) slog.Attr {
	return slog.String("slot", name)
}

// Provider records an image generation provider name.
func Provider(name string) slog.Attr {
	return slog.String("provider", name)
}

// State records an image edit session state.
func State(name string) slog.Attr {
	return slog.String("state", name)
}

// Duration records elapsed time.
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}
