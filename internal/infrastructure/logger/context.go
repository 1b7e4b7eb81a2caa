package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// contextKey is a type for context keys used by the logger package
type contextKey string

// LoggerKey is the context key for the logger
const LoggerKey contextKey = "logger"

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from context, returns a no-op logger if not found
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRunID tags one tool invocation with a fresh run ID and returns the
// enriched logger, also attached to ctx.
func WithRunID(ctx context.Context, logger *zap.Logger, tool string) (context.Context, *zap.Logger) {
	runID := uuid.NewString()
	enriched := logger.With(zap.String("tool", tool), zap.String("run_id", runID))
	return WithContext(ctx, enriched), enriched
}
