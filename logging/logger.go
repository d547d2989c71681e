package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a zap logger for env. local logs at debug level with the
// development encoder, development keeps info level, anything else gets the
// production JSON config.
func New(env string) (*zap.Logger, error) {
	switch env {
	case "local":
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		return cfg.Build()
	case "development":
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		return cfg.Build()
	default:
		return zap.NewProduction()
	}
}

// BadgerLogger adapts a sugared zap logger to badger's Logger interface
type BadgerLogger struct {
	log *zap.SugaredLogger
}

// NewBadgerLogger names the logger "badger" so its lines can be filtered
func NewBadgerLogger(log *zap.SugaredLogger) *BadgerLogger {
	return &BadgerLogger{log: log.Named("badger")}
}

func (l *BadgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error(trim(format, args))
}

func (l *BadgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn(trim(format, args))
}

func (l *BadgerLogger) Infof(format string, args ...interface{}) {
	l.log.Info(trim(format, args))
}

// badger is chatty at debug level
func (l *BadgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug(trim(format, args))
}

// trim drops the trailing newline badger puts on most messages
func trim(format string, args []interface{}) string {
	msg := fmt.Sprintf(format, args...)
	if n := len(msg); n > 0 && msg[n-1] == '\n' {
		msg = msg[:n-1]
	}
	return msg
}
