package config

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger builds the process logger: JSON lines in production, text elsewhere.
// LOG_LEVEL accepts debug, info, warn or error.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(getEnv("LOG_LEVEL", "info"))}

	var handler slog.Handler
	if c.IsProduction() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With("env", c.Server.Environment)
}

func parseLogLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
