package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/emailcraft/pkg/environment"
	"github.com/dmitrymomot/emailcraft/pkg/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json by default", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Info("hello", logger.Field("colors.primary"))

		entry := decode(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
		assert.Equal(t, "colors.primary", entry["field"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText))
		log.Info("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("level filters records", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelWarn))
		log.Info("dropped")
		assert.Empty(t, buf.String())
	})

	t.Run("unknown format panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	})

	t.Run("production environment", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithEnvironment(environment.Production, "emailcraft"),
			logger.WithOutput(buf),
		)
		log.Debug("hidden")
		log.Info("shown")

		entry := decode(t, buf)
		assert.Equal(t, "shown", entry["msg"])
		assert.Equal(t, "emailcraft", entry["service"])
		assert.Equal(t, "production", entry["env"])
	})
}

func TestContextExtractors(t *testing.T) {
	t.Parallel()

	type key struct{}
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
			v, ok := ctx.Value(key{}).(string)
			return slog.String("trace", v), ok
		}),
	)

	ctx := context.WithValue(context.Background(), key{}, "abc")
	log.With(logger.Component("preview")).InfoContext(ctx, "patched")

	entry := decode(t, buf)
	assert.Equal(t, "abc", entry["trace"])
	assert.Equal(t, "preview", entry["component"])
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, slog.Attr{}, logger.RequestID(""))
	assert.Equal(t, "error", logger.Error(errors.New("x")).Key)
	assert.Equal(t, "hero-image", logger.Slot("hero-image").Value.String())
	assert.Equal(t, "openai", logger.Provider("openai").Value.String())
	assert.Equal(t, "loaded", logger.State("loaded").Value.String())
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	log := logger.Discard()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
	log.Error("nothing happens")
}
