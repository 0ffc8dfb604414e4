package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mentionkit/pkg/logger"
)

type ctxKey struct{}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json by default", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Info("hello")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText))
		log.Info("hello")
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("level filters records", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelWarn))
		log.Info("hidden")
		assert.Empty(t, buf.String())
		log.Warn("shown")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("static attributes", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("svc", "mentionkit")))
		log.Info("hello")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "mentionkit", entry["svc"])
	})

	t.Run("invalid format panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	})
}

func TestNew_ContextExtractors(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
			id, ok := ctx.Value(ctxKey{}).(string)
			if !ok {
				return slog.Attr{}, false
			}
			return logger.TenantID(id), true
		}),
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "demo")
	log.With(logger.Component("api")).InfoContext(ctx, "resolved")
	log.InfoContext(context.Background(), "no tenant")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &first))
	require.NoError(t, json.Unmarshal(lines[1], &second))
	assert.Equal(t, "demo", first["tenant_id"])
	assert.Equal(t, "api", first["component"])
	assert.NotContains(t, second, "tenant_id")
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env       string
		wantEnv   string
		debugSeen bool
		json      bool
	}{
		{env: "development", wantEnv: "development", debugSeen: true},
		{env: "", wantEnv: "development", debugSeen: true},
		{env: "production", wantEnv: "production", json: true},
		{env: "staging", wantEnv: "staging", json: true},
	}

	for _, tt := range tests {
		t.Run(tt.wantEnv+"/"+tt.env, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			log := logger.New(logger.WithEnvironment(tt.env, "mentionkit"), logger.WithOutput(buf))
			log.Debug("debug")
			log.Info("info")

			out := buf.String()
			assert.Equal(t, tt.debugSeen, bytes.Contains(buf.Bytes(), []byte("debug")))
			if tt.json {
				assert.Contains(t, out, `"env":"`+tt.wantEnv+`"`)
				assert.Contains(t, out, `"service":"mentionkit"`)
			} else {
				assert.Contains(t, out, "env="+tt.wantEnv)
				assert.Contains(t, out, "service=mentionkit")
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := logger.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := logger.ParseLevel("loud")
	assert.Error(t, err)
}
