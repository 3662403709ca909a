package logger

import (
	"context"

	"go.uber.org/zap"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	cycleIDKey contextKey = "cycle_id"
	venueKey   contextKey = "venue"
	loggerKey  contextKey = "logger"
)

// WithCycleID adds the poll cycle ID to context
func WithCycleID(ctx context.Context, cycleID string) context.Context {
	return context.WithValue(ctx, cycleIDKey, cycleID)
}

// WithVenue adds the target venue name to context
func WithVenue(ctx context.Context, venue string) context.Context {
	return context.WithValue(ctx, venueKey, venue)
}

// CycleIDFromContext returns the cycle ID stored in ctx, or "".
func CycleIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(cycleIDKey).(string)
	return id
}

// FromContext extracts logger from context with all accumulated fields
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
		return l
	}

	l := Logger
	if l == nil {
		// Tests and tools may run without InitLogger
		l = zap.NewNop()
	}

	var fields []zap.Field

	if cycleID, ok := ctx.Value(cycleIDKey).(string); ok && cycleID != "" {
		fields = append(fields, zap.String("cycle_id", cycleID))
	}

	if venue, ok := ctx.Value(venueKey).(string); ok && venue != "" {
		fields = append(fields, zap.String("venue", venue))
	}

	if len(fields) > 0 {
		l = l.With(fields...)
	}

	return l
}

// WithLogger adds logger to context
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// Common field helpers

// DurationField returns a zap field for duration in milliseconds
func DurationField(durationMs int64) zap.Field {
	return zap.Int64("duration_ms", durationMs)
}

// SlotCountField returns a zap field for the number of available slots
func SlotCountField(count int) zap.Field {
	return zap.Int("slot_count", count)
}
