package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.in))
		})
	}
}

func TestNewStructuredLogger_Attributes(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "cdiff", "v1.2.3", "info")

	logger.Info("snapshot saved", "collection_id", "dv_1")
	logger.Debug("dropped at info level")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, "snapshot saved", rec["msg"])
	assert.Equal(t, "cdiff", rec["module"])
	assert.Equal(t, "v1.2.3", rec["version"])
	assert.Equal(t, "dv_1", rec["collection_id"])
	assert.NotContains(t, rec, "source")
}

func TestNewStructuredLogger_DebugAddsSource(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "cdiff", "dev", "debug")

	logger.Debug("cache hit")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Contains(t, rec, "source")
}

func TestSetDefaultStructuredLoggerWithLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	tests := []struct {
		name  string
		level string
		env   string
		want  slog.Level
	}{
		{name: "explicit level", level: "error", env: "debug", want: slog.LevelError},
		{name: "empty falls back to env", level: "", env: "warn", want: slog.LevelWarn},
		{name: "nothing set", level: "", env: "", want: slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvLogLevel, tt.env)
			SetDefaultStructuredLoggerWithLevel("cdiff", "dev", tt.level)

			ctx := context.Background()
			assert.True(t, slog.Default().Enabled(ctx, tt.want))
			assert.False(t, slog.Default().Enabled(ctx, tt.want-1))
		})
	}
}
