// Package logging installs the process-wide slog default for the two
// entry points. The level comes from the caller — config.Load owns the
// LOG_LEVEL environment input, hub-invoke may override it per run — so
// this package never reads the environment itself.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Init installs a text handler on stderr at the given level, for
// interactive use (hub-invoke).
func Init(level string) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: Parse(level)})))
}

// InitJSON installs a JSON handler on stderr at the given level, for
// the Lambda-style entry point whose log lines are scraped by
// CloudWatch Logs Insights.
func InitJSON(level string) {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: Parse(level)})))
}

// Parse maps a level name to its slog.Level, defaulting to info for
// anything unrecognized.
func Parse(level string) slog.Level {
	switch strings.ToLower(level) {
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
