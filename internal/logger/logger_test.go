package logger

import (
	"context"
	"testing"

	"filevault/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/exp/slog"
)

func TestNewLoggerLevels(t *testing.T) {
	ctx := context.Background()

	prodLogger := NewLogger(config.EnvProd)
	require.NotNil(t, prodLogger)
	assert.False(t, prodLogger.Enabled(ctx, slog.LevelDebug))
	assert.True(t, prodLogger.Enabled(ctx, slog.LevelInfo))

	devLogger := NewLogger(config.EnvDev)
	assert.True(t, devLogger.Enabled(ctx, slog.LevelDebug))

	localLogger := NewLogger(config.EnvLocal)
	assert.True(t, localLogger.Enabled(ctx, slog.LevelDebug))
}
