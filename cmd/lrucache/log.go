package main

import (
	"fmt"
	"os"

	"github.com/btcsuite/btclog"

	"lrucache/internal/cache"
)

var (
	// backendLog is the logging backend used to create all subsystem
	// loggers.
	backendLog = btclog.NewBackend(os.Stdout)

	mainLog = backendLog.Logger("MAIN")
	lrucLog = backendLog.Logger("LRUC")

	// subsystemLoggers maps each subsystem identifier to its logger.
	subsystemLoggers = map[string]btclog.Logger{
		"MAIN": mainLog,
		"LRUC": lrucLog,
	}
)

// Initialize package-global logger variables.
func init() {
	cache.UseLogger(lrucLog)
}

// setLogLevels sets the log level for all subsystem loggers.
func setLogLevels(logLevel string) error {
	level, ok := btclog.LevelFromString(logLevel)
	if !ok {
		return fmt.Errorf("invalid log level %q", logLevel)
	}

	for _, logger := range subsystemLoggers {
		logger.SetLevel(level)
	}
	return nil
}
