package app

import (
	"log/slog"
	"os"
	"strings"

	"eats-backend/internal/logx"
)

// NewLogger builds the process logger: JSON to stdout, level taken
// from LOG_LEVEL (debug|info|warn|error), info when unset.
func NewLogger() logx.Logger {
	base := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(os.Getenv("LOG_LEVEL")),
	}))
	return logx.NewSlogAdapter(base)
}

func logLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
