package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/log"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" info ", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
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

func TestSeverity(t *testing.T) {
	assert.Equal(t, log.SeverityDebug, severity(slog.LevelDebug))
	assert.Equal(t, log.SeverityInfo, severity(slog.LevelInfo))
	assert.Equal(t, log.SeverityWarn, severity(slog.LevelWarn))
	assert.Equal(t, log.SeverityError, severity(slog.LevelError))
	assert.Equal(t, log.SeverityError, severity(slog.LevelError+4))
}

func TestConvertAttr(t *testing.T) {
	assert.Equal(t, log.KindBool, convertAttr(slog.Bool("ok", true)).Value.Kind())
	assert.Equal(t, log.KindInt64, convertAttr(slog.Int("status", 503)).Value.Kind())
	assert.Equal(t, log.KindInt64, convertAttr(slog.Uint64("n", 7)).Value.Kind())
	assert.Equal(t, log.KindFloat64, convertAttr(slog.Float64("ratio", 0.5)).Value.Kind())

	kv := convertAttr(slog.String("system", "Jita"))
	assert.Equal(t, "system", kv.Key)
	assert.Equal(t, "Jita", kv.Value.AsString())
}

func TestOTelHandler_WritesThrough(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	handler := NewOTelHandler(inner, "test")

	assert.False(t, handler.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, handler.Enabled(context.Background(), slog.LevelWarn))

	logger := slog.New(handler).With(slog.String("service", "waypoint"))
	logger.Info("route checked", slog.Int("waypoints", 3))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "route checked", entry["msg"])
	assert.Equal(t, "waypoint", entry["service"])
	assert.Equal(t, float64(3), entry["waypoints"])

	withAttrs, ok := handler.WithAttrs([]slog.Attr{slog.String("a", "b")}).(*OTelHandler)
	require.True(t, ok)
	assert.Len(t, withAttrs.attrs, 1)
	assert.Empty(t, handler.attrs)
}

func TestTelemetryManager_ConsoleLogger(t *testing.T) {
	t.Setenv("ENABLE_TELEMETRY", "false")
	t.Setenv("DISABLE_CONSOLE_LOG", "false")
	t.Setenv("ENABLE_PRETTY_LOGS", "false")
	t.Setenv("SERVICE_NAME", "")

	previous := slog.Default()
	defer slog.SetDefault(previous)

	var buf bytes.Buffer
	tm := NewTelemetryManager("waypoint-test").WithOutput(&buf).WithLogLevel("debug")
	assert.Equal(t, "debug", tm.Config().LogLevel)
	assert.False(t, tm.Config().EnableTelemetry)

	require.NoError(t, tm.Initialize(context.Background()))
	require.NotNil(t, tm.Logger())

	buf.Reset()
	slog.Debug("probe")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "probe", entry["msg"])
	assert.Equal(t, "waypoint-test", entry["service"])

	assert.NoError(t, tm.Shutdown(context.Background()))
}

func TestTelemetryManager_DisableConsoleLog(t *testing.T) {
	t.Setenv("ENABLE_TELEMETRY", "false")
	t.Setenv("DISABLE_CONSOLE_LOG", "true")

	previous := slog.Default()
	defer slog.SetDefault(previous)

	var buf bytes.Buffer
	tm := NewTelemetryManager("waypoint-test").WithOutput(&buf)
	require.NoError(t, tm.Initialize(context.Background()))

	slog.Error("dropped")
	assert.Empty(t, buf.String())
}
