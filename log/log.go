// Package log wraps charmbracelet/log behind the structured key-value
// API the simulator logs through. Only the simulator and the settings
// glue log; the pure analyser package never imports this.
package log

import (
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

var logger *log.Logger

func init() {
	// A usable default so library callers who never configure logging
	// still get the simulator's batch start/end lines instead of a nil
	// dereference. Init replaces this wholesale.
	Init("riichi-bot", "info")
}

// Init configures the shared logger. Output goes to stdout rather than
// stderr so IDE consoles don't render every line as an error.
func Init(appName string, logLevel string) {
	logger = log.New(os.Stdout)
	logger.SetPrefix(appName)
	logger.SetReportTimestamp(true)
	logger.SetTimeFormat(time.DateTime)

	if logLevel == "" {
		logLevel = "info"
	}
	switch strings.ToLower(logLevel) {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}

// With returns a sub-logger whose lines all carry keyvals. The
// simulator tags a batch's logger with its run id once instead of
// repeating the id at every call site.
func With(keyvals ...any) *log.Logger {
	return logger.With(keyvals...)
}

func Debug(msg string, keyvals ...any) { logger.Debug(msg, keyvals...) }
func Info(msg string, keyvals ...any)  { logger.Info(msg, keyvals...) }
func Warn(msg string, keyvals ...any)  { logger.Warn(msg, keyvals...) }
func Error(msg string, keyvals ...any) { logger.Error(msg, keyvals...) }
func Fatal(msg string, keyvals ...any) { logger.Fatal(msg, keyvals...) }
