package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It is a no-op logger until Init is called,
// so packages can log safely from tests.
var Log = zap.NewNop()

var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// Init builds the global logger. Calling it more than once replaces the
// previous logger.
func Init() {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = level
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	l, err := cfg.Build()
	if err != nil {
		Log = zap.NewExample()
		Log.Error("Could not build logger, falling back to example logger", zap.Error(err))
		return
	}
	Log = l
}

// SetLevel changes the minimum level of the global logger at runtime.
// Unknown level names leave the level unchanged.
func SetLevel(name string) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		Log.Warn("Unknown log level", zap.String("level", name))
		return
	}
	level.SetLevel(l)
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Log.Sync()
}
