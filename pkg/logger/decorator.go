package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor pulls one attribute out of a context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// Decorator is a slog.Handler that appends extractor attributes before
// delegating to the wrapped handler.
type Decorator struct {
	next       slog.Handler
	extractors []ContextExtractor
}

// NewDecorator wraps next. Nil extractors are dropped.
func NewDecorator(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	d := &Decorator{next: next}
	for _, ex := range extractors {
		if ex != nil {
			d.extractors = append(d.extractors, ex)
		}
	}
	return d
}

func (d *Decorator) Enabled(ctx context.Context, level slog.Level) bool {
	return d.next.Enabled(ctx, level)
}

func (d *Decorator) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range d.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return d.next.Handle(ctx, rec)
}

func (d *Decorator) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Decorator{next: d.next.WithAttrs(attrs), extractors: d.extractors}
}

func (d *Decorator) WithGroup(name string) slog.Handler {
	return &Decorator{next: d.next.WithGroup(name), extractors: d.extractors}
}
