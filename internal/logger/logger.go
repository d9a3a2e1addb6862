package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger *zap.Logger

// Init builds the global logger. BRISA_LOG_LEVEL picks the level and
// BRISA_ENV=development switches to a colored console encoder.
func Init() {
	config := zap.NewProductionConfig()

	if lvl := os.Getenv("BRISA_LOG_LEVEL"); lvl != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(lvl)); err == nil {
			config.Level = zap.NewAtomicLevelAt(level)
		}
	}

	if os.Getenv("BRISA_ENV") == "development" {
		config.Development = true
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	globalLogger, err = config.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
}

// Get returns the global logger, initializing it on first use.
func Get() *zap.Logger {
	if globalLogger == nil {
		Init()
	}
	return globalLogger
}

// Set replaces the global logger. Tests use it with zaptest/observer.
func Set(l *zap.Logger) {
	globalLogger = l
}

func Sync() {
	if globalLogger != nil {
		_ = globalLogger.Sync()
	}
}
