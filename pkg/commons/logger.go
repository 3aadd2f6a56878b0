// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package commons

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the application-wide logging contract. Every component receives
// one by injection; nothing looks a logger up from ambient state.
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	Fatalf(template string, args ...interface{})
	Sync() error
}

type loggerOptions struct {
	name  string
	path  string
	level string
}

// Option configures NewApplicationLogger.
type Option func(*loggerOptions)

// Name sets the service name used for the log file and the logger name.
func Name(name string) Option {
	return func(o *loggerOptions) { o.name = name }
}

// Path sets the directory where rotated log files are written. When empty,
// logs go to stderr only.
func Path(path string) Option {
	return func(o *loggerOptions) { o.path = path }
}

// Level sets the minimum log level: debug, info, warn or error.
func Level(level string) Option {
	return func(o *loggerOptions) { o.level = level }
}

type applicationLogger struct {
	*zap.SugaredLogger
}

// NewApplicationLogger builds the standard application logger: console
// encoding on stderr plus, when a path is configured, a size-rotated JSON
// file via lumberjack.
func NewApplicationLogger(opts ...Option) (Logger, error) {
	options := &loggerOptions{
		name:  "application",
		level: "info",
	}
	for _, opt := range opts {
		opt(options)
	}

	level := zapcore.InfoLevel
	if err := level.Set(options.level); err != nil {
		level = zapcore.InfoLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderCfg),
			zapcore.Lock(os.Stderr),
			level,
		),
	}

	if options.path != "" {
		rotator := &lumberjack.Logger{
			Filename:   filepath.Join(options.path, options.name+".log"),
			MaxSize:    100, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.AddSync(rotator),
			level,
		))
	}

	zl := zap.New(
		zapcore.NewTee(cores...),
		zap.AddCaller(),
	).Named(options.name)

	return &applicationLogger{SugaredLogger: zl.Sugar()}, nil
}
