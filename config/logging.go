package config

import (
	"log/slog"
	"strings"
)

// ParseLogLevel maps a configured level name to a slog level.
// An empty name resolves to error, matching the default.
func ParseLogLevel(value string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error", "":
		return slog.LevelError, true
	default:
		return slog.LevelError, false
	}
}
