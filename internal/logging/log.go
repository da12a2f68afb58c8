// Package logging builds the zap loggers used by poolbench.
//
// Standard output carries the benchmark result only, so every logger writes
// to standard error.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap.Logger together with its name.
type Logger struct {
	*zap.Logger
	name string
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// NewLoggerFromEnv builds a logger for env:
//   - "": logging disabled
//   - "dev": console encoding, debug level
//   - "prod": JSON encoding, info level
func NewLoggerFromEnv(env string) (*Logger, error) {
	var encoder zapcore.Encoder
	var level zapcore.Level

	switch env {
	case "":
		return NewNop(), nil
	case "dev":
		encoder = zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			CallerKey:      "C",
			EncodeCaller:   zapcore.ShortCallerEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			LevelKey:       "L",
			LineEnding:     "\n",
			MessageKey:     "M",
			NameKey:        "N",
			TimeKey:        "T",
		})
		level = zapcore.DebugLevel
	case "prod":
		encoder = zapcore.NewJSONEncoder(zapcore.EncoderConfig{
			CallerKey:      "caller",
			EncodeCaller:   zapcore.ShortCallerEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeName:     zapcore.FullNameEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			LevelKey:       "level",
			LineEnding:     "\n",
			MessageKey:     "message",
			NameKey:        "logger",
			StacktraceKey:  "stacktrace",
			TimeKey:        "@timestamp",
		})
		level = zapcore.InfoLevel
	default:
		return nil, fmt.Errorf("unknown log environment %q (want dev or prod)", env)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level)
	return &Logger{Logger: zap.New(core, zap.AddCaller())}, nil
}

// Named returns a child logger. Names are joined with dots.
func (log *Logger) Named(name string) *Logger {
	full := name
	if log.name != "" {
		full = log.name + "." + name
	}
	return &Logger{
		Logger: log.Logger.Named(name),
		name:   full,
	}
}

// GetName returns the dotted name of the logger.
func (log *Logger) GetName() string {
	return log.name
}

// AtExit flushes buffered log entries. Meant to be deferred right after the
// logger is created.
func (log *Logger) AtExit() {
	if log.Logger != nil {
		_ = log.Logger.Sync()
	}
}
