// Package logger provides structured logging functionality for the
// library using Go's standard library log/slog package.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Setup initializes and configures the logging system based on the
// given level ("debug", "info", "warn", "error"; case-insensitive). It
// creates a structured JSON logger, sets it as the slog default, and
// returns it. An unrecognized level falls back to info with a warning.
func Setup(logLevel string) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo

		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", logLevel,
			"default_level", "info")
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger, nil
}

// contextKey is the private key type for logger values stored in a context.
type contextKey struct{}

// WithLogger returns a context carrying the given logger. Services
// retrieve it with FromContext or FromContextOrDefault so request-scoped
// attributes (correlation IDs, reviewer IDs) flow through call chains.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext extracts the logger from the context, if one was attached.
func FromContext(ctx context.Context) (*slog.Logger, bool) {
	logger, ok := ctx.Value(contextKey{}).(*slog.Logger)
	return logger, ok
}

// FromContextOrDefault returns the context logger when present, the
// given default otherwise, falling back to slog.Default when both are
// absent.
func FromContextOrDefault(ctx context.Context, def *slog.Logger) *slog.Logger {
	if logger, ok := FromContext(ctx); ok {
		return logger
	}
	if def != nil {
		return def
	}
	return slog.Default()
}
