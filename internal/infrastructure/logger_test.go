package infrastructure

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eirstat/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"garbage", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.input))
		})
	}
}

func TestCreateLoggerConsole(t *testing.T) {
	logger, err := createLogger(config.LoggingConfig{Level: "debug", Format: "text", Output: "console"})
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestCreateLoggerFile(t *testing.T) {
	path := t.TempDir() + "/sub/eirstat.log"
	logger, err := createLogger(config.LoggingConfig{Level: "info", Format: "json", Output: "file", FilePath: path})
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info("hello")
	require.NoError(t, CloseLogger())
	assert.FileExists(t, path)
}

func TestGetLoggerFallsBackToDefault(t *testing.T) {
	assert.NotNil(t, GetLogger())
}
