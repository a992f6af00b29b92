// Package logging builds the structured operator logger.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults for file output.
const (
	MaxSizeMB  = 50
	MaxBackups = 5
	MaxAgeDays = 28
)

// Options controls where and how verbosely the logger writes.
type Options struct {
	Level zapcore.Level
	File  string // Empty writes JSON lines to stderr
	Dev   bool   // Console encoding for interactive use
}

// Logger pairs a zap logger with its adjustable level and the sink to close.
type Logger struct {
	*zap.Logger
	Level zap.AtomicLevel
	sink  io.Closer
}

// New builds a Logger from opts.
func New(opts Options) *Logger {
	level := zap.NewAtomicLevelAt(opts.Level)

	var ws zapcore.WriteSyncer
	var sink io.Closer
	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    MaxSizeMB,
			MaxBackups: MaxBackups,
			MaxAge:     MaxAgeDays,
			Compress:   true,
		}
		ws = zapcore.AddSync(rotator)
		sink = rotator
	} else {
		ws = zapcore.Lock(os.Stderr)
	}

	return &Logger{
		Logger: zap.New(zapcore.NewCore(newEncoder(opts.Dev), ws, level), zap.AddCaller()),
		Level:  level,
		sink:   sink,
	}
}

func newEncoder(dev bool) zapcore.Encoder {
	if dev {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(cfg)
	}
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(cfg)
}

// SetLevel parses text and applies it to the running logger.
func (l *Logger) SetLevel(text string) error {
	level, err := zapcore.ParseLevel(text)
	if err != nil {
		return err
	}
	l.Level.SetLevel(level)
	return nil
}

// Close flushes buffered entries and closes the rotating file, if any.
func (l *Logger) Close() error {
	_ = l.Sync()
	if l.sink != nil {
		return l.sink.Close()
	}
	return nil
}
