package logger

import (
	"os"

	"filevault/internal/config"

	"golang.org/x/exp/slog"
)

// NewLogger builds the process logger for the given environment: readable
// text with debug level locally, JSON for dev and prod.
func NewLogger(env string) *slog.Logger {
	var handler slog.Handler

	switch env {
	case config.EnvProd:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	case config.EnvDev:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	return slog.New(handler)
}
