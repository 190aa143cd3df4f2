// Package log provides the process-wide zap logger.
package log

import (
	"fmt"

	"go.uber.org/zap"
)

var log *zap.SugaredLogger

// Init initializes the package-level logger. Debug selects the development
// encoder with debug-level output.
func Init(debug bool) error {
	var zapLogger *zap.Logger
	var err error

	if debug {
		zapLogger, err = zap.NewDevelopment(zap.AddCallerSkip(1))
	} else {
		zapLogger, err = zap.NewProduction(zap.AddCallerSkip(1))
	}
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %v", err)
	}

	log = zapLogger.Sugar()
	return nil
}

// GetSugaredLogger returns the sugared logger instance, initializing a
// production fallback if Init was never called.
func GetSugaredLogger() *zap.SugaredLogger {
	if log == nil {
		base, _ := zap.NewProduction(zap.AddCallerSkip(1))
		log = base.Sugar()
	}
	return log
}

// Sync flushes any buffered log entries.
func Sync() {
	if log != nil {
		log.Sync()
	}
}

func Debug(args ...interface{}) { GetSugaredLogger().Debug(args...) }

func Debugf(template string, args ...interface{}) { GetSugaredLogger().Debugf(template, args...) }

func Info(args ...interface{}) { GetSugaredLogger().Info(args...) }

func Infof(template string, args ...interface{}) { GetSugaredLogger().Infof(template, args...) }

func Warn(args ...interface{}) { GetSugaredLogger().Warn(args...) }

func Warnf(template string, args ...interface{}) { GetSugaredLogger().Warnf(template, args...) }

func Error(args ...interface{}) { GetSugaredLogger().Error(args...) }

func Errorf(template string, args ...interface{}) { GetSugaredLogger().Errorf(template, args...) }

func Fatalf(template string, args ...interface{}) { GetSugaredLogger().Fatalf(template, args...) }
