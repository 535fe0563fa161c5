// Package logging builds the zap loggers used by the demo programs.
package logging

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// File receives JSON lines rotated by size. Empty disables the file core.
	File string

	// Level is a zap level name. Default: "info".
	Level string

	// Rotation limits. Defaults: 10 MB, 5 backups, 30 days.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int

	// Console receives human-readable lines when set. A terminal UI must leave
	// it nil.
	Console io.Writer
}

// Logger is a zap logger bound to its rotating file.
type Logger struct {
	*zap.Logger
	rotator *lumberjack.Logger
}

// New builds a Logger that tees a rotated JSON file core and an optional
// console core. With neither output it returns a no-op logger.
func New(opts Options) (*Logger, error) {
	level := zap.InfoLevel
	if opts.Level != "" {
		l, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		level = l
	}

	var cores []zapcore.Core
	var rotator *lumberjack.Logger
	if opts.File != "" {
		rotator = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 10),
			MaxBackups: orDefault(opts.MaxBackups, 5),
			MaxAge:     orDefault(opts.MaxAgeDays, 30),
			Compress:   true,
		}
		enc := zap.NewProductionEncoderConfig()
		enc.TimeKey = "timestamp"
		enc.MessageKey = "message"
		enc.EncodeTime = zapcore.ISO8601TimeEncoder
		enc.EncodeLevel = zapcore.CapitalLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(rotator), level))
	}
	if opts.Console != nil {
		enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		cores = append(cores, zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(opts.Console)), level))
	}
	if len(cores) == 0 {
		return &Logger{Logger: zap.NewNop()}, nil
	}

	return &Logger{
		Logger:  zap.New(zapcore.NewTee(cores...), zap.AddCaller()),
		rotator: rotator,
	}, nil
}

// Close flushes buffered entries and closes the log file.
func (l *Logger) Close() error {
	_ = l.Sync()
	if l.rotator == nil {
		return nil
	}
	return l.rotator.Close()
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
