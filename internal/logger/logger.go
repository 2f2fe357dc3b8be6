// Package logger holds the process-wide structured logger.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init builds the global logger for the given environment, once. Production
// logs JSON; everything else gets the human-readable console encoder.
func Init(env string) {
	once.Do(func() {
		sugar = newBase(env).Sugar()
	})
}

func newBase(env string) *zap.Logger {
	var base *zap.Logger
	var err error
	if env == "production" {
		base, err = zap.NewProduction()
	} else {
		base, err = zap.NewDevelopment()
	}
	if err != nil {
		// A process without logs beats a process that cannot start.
		return zap.NewNop()
	}
	return base
}

// Get returns the global sugared logger, initializing a development logger
// when Init has not run. Tests rely on this so packages can log freely.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Sync flushes buffered entries. Call it on shutdown.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
