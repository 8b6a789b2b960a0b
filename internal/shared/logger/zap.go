package logger

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/unishowcase/server/internal/shared/requestctx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZapLogger builds the structured logger used by services and the event bus.
func NewZapLogger(cfg *Config) (*zap.Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var zc zap.Config
	if strings.EqualFold(cfg.Format, "text") {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zapcore.InfoLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return log, nil
}

// WithContext returns log annotated with the request and user IDs found in ctx.
func WithContext(ctx context.Context, log *zap.Logger) *zap.Logger {
	fields := make([]zap.Field, 0, 2)
	if id := requestctx.RequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if id := requestctx.UserID(ctx); id != uuid.Nil {
		fields = append(fields, zap.String("user_id", id.String()))
	}
	if len(fields) == 0 {
		return log
	}
	return log.With(fields...)
}
