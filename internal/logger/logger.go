package logger

import (
	"go.uber.org/zap"
)

var sugar *zap.SugaredLogger = func() *zap.SugaredLogger {
	l, _ := zap.NewDevelopment()
	return l.Sugar()
}()

// Init replaces the default development logger. Call once from main after
// the environment is known.
func Init(environment string) {
	var (
		l   *zap.Logger
		err error
	)
	if environment == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return
	}
	sugar = l.Sugar()
}

func Debugf(format string, args ...interface{}) { sugar.Debugf(format, args...) }

func Infof(format string, args ...interface{}) { sugar.Infof(format, args...) }

func Warnf(format string, args ...interface{}) { sugar.Warnf(format, args...) }

func Errorf(format string, args ...interface{}) { sugar.Errorf(format, args...) }

// Sync flushes buffered log entries.
func Sync() {
	_ = sugar.Sync()
}
