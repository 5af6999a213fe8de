// Package logging builds the process logger.  Zap does the work; a slog
// view of the same core is handed to components that log through the
// standard structured logging interface (the echo request logger).
package logging

import (
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// New returns a zap logger, its slog counterpart and a sync func to call
// before the process exits.  Production uses JSON output; everything else a
// colored console encoder.
func New(isProd bool, level string) (*zap.Logger, *slog.Logger, func() error) {
	var cfg zap.Config
	if isProd {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(level))

	zapLogger := zap.Must(cfg.Build())
	return zapLogger, slog.New(zapslog.NewHandler(zapLogger.Core())), zapLogger.Sync
}

// ParseLevel maps a level name to a zap level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "trace":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
