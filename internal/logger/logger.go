package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. Initialize rebuilds it at the configured
// level; before that it is a no-op so library code can log unconditionally.
var Log *zap.SugaredLogger = zap.NewNop().Sugar()

// Initialize sets up the global logger at the given level ("debug", "info",
// "warn", "error"). Unknown levels fall back to info.
func Initialize(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = zl.Sugar()
	return nil
}
