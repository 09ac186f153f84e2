package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/multipass/pkg/environment"
	"github.com/dmitrymomot/multipass/pkg/logger"
)

func TestNew(t *testing.T) {
	t.Run("creates JSON logger", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		require.NotNil(t, log)
		log.Info("hello")
		var entry map[string]any
		err := json.Unmarshal(buf.Bytes(), &entry)
		require.NoError(t, err)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text formatter option", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithTextFormatter(),
		)
		log.Info("hello")
		out := buf.String()
		assert.Contains(t, out, "INFO")
		assert.Contains(t, out, "hello")
	})

	t.Run("json formatter option overrides text", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithTextFormatter(),
			logger.WithJSONFormatter(),
		)
		log.Info("hello")
		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("level filters records", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelWarn))
		log.Info("dropped")
		assert.Empty(t, buf.String())
		log.Warn("kept")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("includes default attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithAttr(slog.String("svc", "test")),
		)
		log.Info("msg")
		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "test", entry["svc"])
	})

	t.Run("extracts from context", func(t *testing.T) {
		buf := &bytes.Buffer{}
		type key string
		ctxKey := key("id")
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
				if v := ctx.Value(ctxKey); v != nil {
					return slog.String("id", v.(string)), true
				}
				return slog.Attr{}, false
			}),
		)
		ctx := context.WithValue(context.Background(), ctxKey, "42")
		log.With("k", "v").InfoContext(ctx, "context msg")
		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "42", entry["id"])
		assert.Equal(t, "v", entry["k"])
	})
}

func TestWithEnvironment(t *testing.T) {
	t.Run("development uses text at debug", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithEnvironment(environment.Development, "multipass"),
			logger.WithOutput(buf),
		)
		log.Debug("msg")
		output := buf.String()
		assert.Contains(t, output, "DEBUG")
		assert.Contains(t, output, "service=multipass")
		assert.Contains(t, output, "env=development")
	})

	t.Run("production uses json at info", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithEnvironment(environment.Production, "multipass"),
			logger.WithOutput(buf),
		)
		log.Debug("hidden")
		assert.Empty(t, buf.String())

		log.Info("msg")
		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "multipass", entry["service"])
		assert.Equal(t, "production", entry["env"])
	})

	t.Run("empty service is ignored", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment(environment.Production, ""), logger.WithOutput(buf))
		log.Info("msg")
		assert.NotContains(t, buf.String(), "service")
	})
}

func TestParseLevel(t *testing.T) {
	l, err := logger.ParseLevel("", slog.LevelInfo)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, l)

	l, err = logger.ParseLevel("DEBUG", slog.LevelInfo)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	l, err = logger.ParseLevel("warn", slog.LevelInfo)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)

	l, err = logger.ParseLevel("loud", slog.LevelError)
	require.Error(t, err)
	assert.Equal(t, slog.LevelError, l)
}

func TestSetAsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	buf := &bytes.Buffer{}
	logger.SetAsDefault(logger.New(logger.WithOutput(buf)))
	slog.Info("default")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "default", entry["msg"])
}

func TestWithFormatPanics(t *testing.T) {
	assert.Panics(t, func() {
		logger.New(logger.WithFormat(logger.Format("xml")))
	})
	assert.NotPanics(t, func() {
		logger.New(logger.WithFormat(logger.FormatText))
	})
}
