package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"content-api/internal/handler/http/requestid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"invalid", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", FormatJSON)

	logger.Debug("filtered")
	logger.Info("article created", slog.String("article_id", "a1"), slog.Int("categories", 2))

	output := strings.TrimSpace(buf.String())
	assert.NotContains(t, output, "filtered")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &entry))
	assert.Equal(t, "article created", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "a1", entry["article_id"])
	assert.Equal(t, float64(2), entry["categories"])
	assert.NotEmpty(t, entry["time"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", "TEXT")

	logger.Info("filtered")
	logger.Warn("bulk rejected", slog.Int("missing", 3))

	output := buf.String()
	assert.NotContains(t, output, "filtered")
	assert.Contains(t, output, "level=WARN")
	assert.Contains(t, output, "missing=3")
}

func TestWithRequestID(t *testing.T) {
	tests := []struct {
		name      string
		requestID string
	}{
		{name: "plain request ID", requestID: "test-request-123"},
		{name: "UUID request ID", requestID: "550e8400-e29b-41d4-a716-446655440000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := New(&buf, "info", FormatJSON)
			ctx := requestid.NewContext(context.Background(), tt.requestID)

			WithRequestID(ctx, base).Info("test message")

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.requestID, entry["request_id"])
		})
	}
}

func TestWithRequestID_EmptyRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, "info", FormatJSON)

	logger := WithRequestID(context.Background(), base)
	assert.Same(t, base, logger, "logger should be returned unchanged")

	logger.Info("no id")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, "info", FormatJSON)

	WithFields(base, map[string]any{
		"operation": "bulk_delete",
		"count":     3,
	}).Info("bulk completed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "bulk_delete", entry["operation"])
	assert.Equal(t, float64(3), entry["count"])
}

func TestWithFields_EmptyFields(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, "info", FormatJSON)

	WithFields(base, map[string]any{}).Info("plain")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Len(t, entry, 3, "only time, level and msg expected")
}

func TestFromContext(t *testing.T) {
	t.Run("without logger returns default", func(t *testing.T) {
		assert.Equal(t, slog.Default(), FromContext(context.Background()))
	})

	t.Run("with logger returns it", func(t *testing.T) {
		logger := New(&bytes.Buffer{}, "info", FormatJSON)
		ctx := WithLogger(context.Background(), logger)
		assert.Same(t, logger, FromContext(ctx))
	})
}

func TestLogger_ContextPropagation(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", FormatJSON)

	ctx := WithLogger(context.Background(), logger)
	ctx = requestid.NewContext(ctx, "propagation-test")

	WithRequestID(ctx, FromContext(ctx)).Info("propagation test")

	output := buf.String()
	assert.Contains(t, output, "propagation test")
	assert.Contains(t, output, "propagation-test")
}

func BenchmarkLogger_WithRequestID(b *testing.B) {
	var buf bytes.Buffer
	base := New(&buf, "info", FormatJSON)
	ctx := requestid.NewContext(context.Background(), "benchmark-req-id")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		WithRequestID(ctx, base).Info("benchmark message")
	}
}
