package shared

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// SetupLogger configures a console logger on stderr
func SetupLogger(debug, json bool) *log.Logger {
	return NewLogger(os.Stderr, debug, json)
}

// NewLogger configures a logger on w, optionally emitting JSON lines
func NewLogger(w io.Writer, debug, json bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	opts := log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	}
	if json {
		opts.Formatter = log.JSONFormatter
		opts.TimeFormat = time.RFC3339Nano
	}
	return log.NewWithOptions(w, opts)
}
