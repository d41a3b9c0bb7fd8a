package main

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger writes console-encoded entries to stderr, or JSON entries to a rotated file if one is configured.
func newLogger(cfg LogConfig, stderr io.Writer) (*zap.Logger, error) {
	level := new(zapcore.Level)
	e := level.UnmarshalText([]byte(cfg.Level))
	if e != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, e)
	}

	encodeConfig := zap.NewProductionEncoderConfig()
	encodeConfig.TimeKey = "time"
	encodeConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encodeConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encodeConfig.EncodeCaller = zapcore.ShortCallerEncoder

	var encoder zapcore.Encoder
	var sink zapcore.WriteSyncer
	if cfg.File == "" {
		encoder = zapcore.NewConsoleEncoder(encodeConfig)
		sink = zapcore.AddSync(stderr)
	} else {
		encoder = zapcore.NewJSONEncoder(encodeConfig)
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxAge:     cfg.MaxAge,
			MaxBackups: cfg.MaxBackups,
			Compress:   cfg.Compress,
		})
	}

	core := zapcore.NewCore(encoder, sink, level)
	return zap.New(core, zap.AddCaller()), nil
}
