package vegan

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with vegan-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithPermutations adds a permutation-count field to the logger.
func (l *Logger) WithPermutations(nperm int) *Logger {
	return &Logger{
		Logger: l.Logger.With("permutations", nperm),
	}
}

// WithDims adds response dimension fields to the logger.
func (l *Logger) WithDims(nr, nc int) *Logger {
	return &Logger{
		Logger: l.Logger.With("rows", nr, "cols", nc),
	}
}

// LogBatch logs the outcome of one permutation batch.
func (l *Logger) LogBatch(ctx context.Context, nperm, workers int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "permutation batch failed",
			"permutations", nperm,
			"workers", workers,
			"duration", duration,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "permutation batch completed",
			"permutations", nperm,
			"workers", workers,
			"duration", duration,
		)
	}
}
