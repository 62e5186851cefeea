package logger

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrymomot/emailcraft/pkg/environment"
)

// Format is the output encoding of the logger.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Option configures New.
type Option func(*options)

type options struct {
	level      slog.Level
	format     Format
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
	source     bool
}

// WithLevel sets the minimum level.
func WithLevel(l slog.Level) Option {
	return func(o *options) { o.level = l }
}

// WithFormat sets the output format. Unknown formats panic at startup.
func WithFormat(f Format) Option {
	return func(o *options) {
		if f != FormatJSON && f != FormatText {
			panic(fmt.Errorf("logger: unknown format %q", f))
		}
		o.format = f
	}
}

// WithOutput redirects records to w. A nil writer is ignored.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithSource adds the caller position to every record.
func WithSource() Option {
	return func(o *options) { o.source = true }
}

// WithAttr attaches static attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(o *options) { o.attrs = append(o.attrs, attrs...) }
}

// WithContextExtractors registers extractors run against the context of each record.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) {
		for _, ex := range extractors {
			if ex != nil {
				o.extractors = append(o.extractors, ex)
			}
		}
	}
}

// WithEnvironment applies the defaults of env: debug-level text output in
// development, info-level JSON otherwise. The service name and environment
// are attached to every record.
func WithEnvironment(env environment.Environment, service string) Option {
	return func(o *options) {
		if env.IsProduction() || env == environment.Staging {
			o.level = slog.LevelInfo
			o.format = FormatJSON
		} else {
			o.level = slog.LevelDebug
			o.format = FormatText
		}
		if service != "" {
			o.attrs = append(o.attrs, slog.String("service", service))
		}
		o.attrs = append(o.attrs, slog.String("env", env.String()))
	}
}
