package utils

import (
	"log"

	"coachly/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// InitializeLogger builds the process-wide zap logger: JSON at the
// configured level in production, colored console at debug otherwise. Also
// installed as zap's global so zap.L() works in middleware.
func InitializeLogger() {
	var cfg zap.Config

	if config.IsProduction() {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(parseLogLevel(config.AppConfig.LogLevel))
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	built, err := cfg.Build()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	logger = built
	zap.ReplaceGlobals(built)
}

// GetLogger returns the process-wide logger, building it on first use.
func GetLogger() *zap.Logger {
	if logger == nil {
		InitializeLogger()
	}
	return logger
}

func parseLogLevel(s string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
