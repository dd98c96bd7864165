package logger

import (
	"supplyhealth-service/pkg/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// InitLogger initializes the global logger with configuration
func InitLogger(cfg *config.Config) error {
	built, err := Build(cfg.Server.Env, cfg.Log.Level, cfg.LogConfig()...)
	if err != nil {
		return err
	}

	log = built
	// Replace the global logger
	zap.ReplaceGlobals(log)
	return nil
}

// Build creates a zap logger: JSON with ISO8601 timestamps in production,
// coloured console output otherwise
func Build(env, logLevel string, fields ...zap.Field) (*zap.Logger, error) {
	level := ParseLevel(logLevel)

	if env == "production" {
		// Production logger configuration
		prodConfig := zap.NewProductionConfig()
		prodConfig.Level = zap.NewAtomicLevelAt(level)
		prodConfig.EncoderConfig.TimeKey = "timestamp"
		prodConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return prodConfig.Build(zap.Fields(fields...))
	}

	// Development logger configuration with colors and human-friendly output
	devConfig := zap.NewDevelopmentConfig()
	devConfig.Level = zap.NewAtomicLevelAt(level)
	devConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return devConfig.Build(zap.Fields(fields...))
}

// ParseLevel maps a configured level name to a zap level, defaulting to info
func ParseLevel(logLevel string) zapcore.Level {
	switch logLevel {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if log == nil {
		return zap.L()
	}
	return log
}
