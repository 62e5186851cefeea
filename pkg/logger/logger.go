package logger

import (
	"context"
	"log/slog"
	"os"
)

// New returns a logger configured by opts. Without options it writes
// info-level JSON to stdout.
func New(opts ...Option) *slog.Logger {
	o := &options{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(o)
	}

	ho := &slog.HandlerOptions{Level: o.level, AddSource: o.source}

	var h slog.Handler
	switch o.format {
	case FormatText:
		h = slog.NewTextHandler(o.output, ho)
	default:
		h = slog.NewJSONHandler(o.output, ho)
	}
	if len(o.attrs) > 0 {
		h = h.WithAttrs(o.attrs)
	}

	return slog.New(NewDecorator(h, o.extractors...))
}

// Discard returns a logger that drops every record. Packages use it when the
// caller passes no logger.
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
