package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap SugaredLogger with the printf-style helpers used across the app
type Logger struct {
	sugar     *zap.SugaredLogger
	channelID string
}

// New creates a new logger with the given channel ID
func New(channelID string) *Logger {
	return Global.WithChannel(channelID)
}

// NewWithLevel builds a logger writing to stdout at the given level.
// An unknown level falls back to info.
func NewWithLevel(level string, production bool) (*Logger, error) {
	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))

	base, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return &Logger{sugar: base.Sugar()}, nil
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// WithChannel returns a child logger tagged with a channel (chat) ID
func (l *Logger) WithChannel(channelID string) *Logger {
	if channelID == "" {
		return &Logger{sugar: l.sugar}
	}
	return &Logger{
		sugar:     l.sugar.With("channel", channelID),
		channelID: channelID,
	}
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.sugar.Errorf(format, v...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	l.sugar.Debugf(format, v...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...interface{}) {
	l.sugar.Warnf(format, v...)
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}

// Global logger instance for application-wide logging
var Global = mustDefault()

func mustDefault() *Logger {
	l, err := NewWithLevel("info", false)
	if err != nil {
		return Nop()
	}
	return l
}

// SetGlobal sets the global logger
func SetGlobal(logger *Logger) {
	Global = logger
}
