// Package logger provides structured logging for the application.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Fields is a map of field names to values attached to a log message.
type Fields map[string]interface{}

// Logger defines the interface for all logging operations. Diagnostic
// output only: user-facing report lines never go through the logger.
type Logger interface {
	// Debug logs a message at debug level. Only shown when verbosity >= 1.
	Debug(msg string)

	// Info logs a message at info level.
	Info(msg string)

	// Warn logs a message at warn level.
	Warn(msg string)

	// Error logs a message at error level.
	Error(msg string)

	// WithFields returns a new Logger with the given fields added to its
	// context. Fields are included in all subsequent log messages.
	WithFields(fields Fields) Logger
}

// Config holds the configuration for creating a new logger instance.
type Config struct {
	// Verbosity determines the logging level:
	// 0: Info, Warn, Error (default)
	// 1+: Debug and above
	Verbosity int

	// Output specifies where logs should be written.
	// If nil, defaults to os.Stderr.
	Output io.Writer
}

type logger struct {
	zap *zap.Logger
}

// NewLogger creates a new Logger instance with the given configuration.
//
// Example:
//
//	log := logger.NewLogger(logger.Config{Verbosity: 1})
//	log.WithFields(logger.Fields{"path": cfgPath}).Info("Cleanup started")
func NewLogger(config Config) Logger {
	if config.Output == nil {
		config.Output = os.Stderr
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}

	level := zapcore.InfoLevel
	if config.Verbosity >= 1 {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(config.Output),
		level,
	)

	return &logger{zap: zap.New(core)}
}

func (l *logger) Debug(msg string) {
	l.zap.Debug(msg)
}

func (l *logger) Info(msg string) {
	l.zap.Info(msg)
}

func (l *logger) Warn(msg string) {
	l.zap.Warn(msg)
}

func (l *logger) Error(msg string) {
	l.zap.Error(msg)
}

func (l *logger) WithFields(fields Fields) Logger {
	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}

	return &logger{zap: l.zap.With(zapFields...)}
}
