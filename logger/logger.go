// Package logger wraps zap with a file sink. The TUI owns the
// terminal, so logs go to ~/.config/promptdj/debug.log.
package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

type Logger struct {
	sugar *zap.SugaredLogger
}

// New builds a file-backed logger. The directory is created if needed.
func New() (*Logger, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	logDir := filepath.Join(dir, ".config", "promptdj")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{filepath.Join(logDir, "debug.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths

	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{sugar: zl.Sugar()}, nil
}

// Nop returns a logger that discards everything. Used in tests.
func Nop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, keysAndValues...)
}

func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, keysAndValues...)
}

func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, keysAndValues...)
}

func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{sugar: l.sugar.With(keysAndValues...)}
}
