package mengine

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// logger is built lazily on first use. Not safe for concurrent use.
var logger *log.Logger

// Logger returns the package logger, creating the default stderr logger on
// first use.
func Logger() *log.Logger {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.TimeOnly,
			Prefix:          "mengine",
			Level:           log.InfoLevel,
		})
	}
	return logger
}

// SetLogger replaces the package logger. nil restores the default.
func SetLogger(l *log.Logger) {
	logger = l
}
