package logutils

import (
	"context"

	"github.com/romashorodok/content-site/pkg/envutils"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggerConfig struct {
	Level       string
	Development bool
}

func NewLoggerConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:       envutils.Env("LOG_LEVEL", "info"),
		Development: envutils.Env("APP_ENV", "production") == "development",
	}
}

func New(config *LoggerConfig) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	if config.Development {
		zapConfig = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(config.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	return zapConfig.Build()
}

type NewLoggerParams struct {
	fx.In
	Lifecycle fx.Lifecycle

	Config *LoggerConfig
}

func NewLogger(params NewLoggerParams) (*zap.Logger, error) {
	logger, err := New(params.Config)
	if err != nil {
		return nil, err
	}
	params.Lifecycle.Append(fx.StopHook(func(context.Context) error {
		// Sync on stderr reports EINVAL on some platforms, nothing to act on.
		_ = logger.Sync()
		return nil
	}))
	return logger, nil
}

func NewFxLogger(logger *zap.Logger) fxevent.Logger {
	return &fxevent.ZapLogger{Logger: logger.Named("fx")}
}
