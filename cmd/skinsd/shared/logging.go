package shared

import (
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures the process logger.
func SetupLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// ApplyLogLevel applies a config-file log level unless debug already
// forced it lower.
func ApplyLogLevel(logger *log.Logger, level string, debug bool) {
	if debug {
		return
	}
	if parsed, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(parsed)
	}
}
