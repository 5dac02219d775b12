package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide sugared logger. It discards everything until Init
// is called.
var Log = zap.NewNop().Sugar()

// New builds a zap logger writing to stdout. encoding is "json" or "console".
func New(level, encoding string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if encoding == "" {
		encoding = "json"
	}

	config := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(lvl),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
	}
	return config.Build()
}

// Init builds the process logger and installs it as Log and as zap's global.
func Init(level, encoding string) (*zap.Logger, error) {
	l, err := New(level, encoding)
	if err != nil {
		return nil, err
	}
	Log = l.Sugar()
	zap.ReplaceGlobals(l)
	return l, nil
}

// Convenience functions
func Info(args ...any) {
	Log.Info(args...)
}

func Infof(template string, args ...any) {
	Log.Infof(template, args...)
}

func Warnf(template string, args ...any) {
	Log.Warnf(template, args...)
}

func Error(args ...any) {
	Log.Error(args...)
}

func Errorf(template string, args ...any) {
	Log.Errorf(template, args...)
}

func Fatalf(template string, args ...any) {
	Log.Fatalf(template, args...)
}
