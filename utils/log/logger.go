package log

import (
	"context"
	"os"

	"go.uber.org/zap"
)

var logger *zap.Logger

func init() {
	if os.Getenv("DEBUG") == "true" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
}

func WithCtx(ctx context.Context) *zap.Logger {
	fields := []zap.Field{}

	if v := ctx.Value("conversation_id"); v != nil {
		fields = append(fields, zap.Any("conversation_id", v))
	}
	if v := ctx.Value("visitor_id"); v != nil {
		fields = append(fields, zap.Any("visitor_id", v))
	}
	if v := ctx.Value("remote_ip"); v != nil {
		fields = append(fields, zap.Any("remote_ip", v))
	}

	return logger.With(fields...)
}

func With(fields ...zap.Field) *zap.Logger {
	return logger.With(fields...)
}
