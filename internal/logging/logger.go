// Package logging provides the diagnostic log for branchtitle.
//
// The hook process is invoked by the host application with its stdout
// reserved for the hook result, so diagnostics go to a flat append-only
// file. Every line reads "[YYYY-MM-DD HH:MM:SS] LEVEL message". The
// logger is injectable: consumers take *Logger, the file sink is the
// production default, and tests substitute an observer-backed logger.
package logging

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/branchtitle/internal/config"
)

// Logger wraps zap for the diagnostic log.
type Logger struct {
	zap *zap.Logger
}

// NewLogger creates a file-backed logger from config. The file is opened
// append-only and created if missing.
func NewLogger(cfg config.LogConfig) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	f, err := os.OpenFile(cfg.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", cfg.Path, err)
	}

	core := zapcore.NewCore(newEncoder(), zapcore.AddSync(f), level)
	return &Logger{zap: zap.New(core)}, nil
}

// NewNop returns a logger that discards everything. Used when the file
// sink cannot be opened; diagnostics are best-effort.
func NewNop() *Logger {
	return &Logger{zap: zap.NewNop()}
}

// newEncoder creates the flat-file line encoder.
func newEncoder() zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.ConsoleSeparator = " "
	encoderCfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("[2006-01-02 15:04:05]"))
	}
	return zapcore.NewConsoleEncoder(encoderCfg)
}

func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.zap.Debug(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.zap.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.zap.Warn(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.zap.Error(msg, fields...)
}

// With returns a child logger with constant fields.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{zap: l.zap.With(fields...)}
}

// Named returns a child logger with a name segment appended.
func (l *Logger) Named(name string) *Logger {
	return &Logger{zap: l.zap.Named(name)}
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.zap.Sync()
}

// Underlying returns the underlying zap.Logger.
func (l *Logger) Underlying() *zap.Logger {
	return l.zap
}
