// Package logger builds the zap logger and carries request-scoped loggers in a context.
package logger

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CorrelationIDKey is the log field carrying the request correlation id.
const CorrelationIDKey = "correlationId"

type ctxKey struct{}

// New creates a logger at level. Development mode writes human-readable console output.
func New(level string, development bool) (*zap.Logger, error) {
	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	return cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
}

// parseLevel parses string log level to zapcore.Level
func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// WithContext returns a copy of ctx carrying l.
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored in ctx, or a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	return FromContextOr(ctx, zap.NewNop())
}

// FromContextOr returns the logger stored in ctx, or fallback.
func FromContextOr(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
			return l
		}
	}
	return fallback
}

// CorrelationID returns the correlation id stored alongside the logger, if any.
func CorrelationID(ctx context.Context) string {
	if ctx != nil {
		if id, ok := ctx.Value(correlationKey{}).(string); ok {
			return id
		}
	}
	return ""
}

type correlationKey struct{}

// WithCorrelationID stores id in ctx and tags the context logger with it.
func WithCorrelationID(ctx context.Context, base *zap.Logger, id string) context.Context {
	ctx = context.WithValue(ctx, correlationKey{}, id)
	return WithContext(ctx, base.With(zap.String(CorrelationIDKey, id)))
}
