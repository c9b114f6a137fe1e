// Package logger provides modifications to charmbracelet/log's default logger to be used in various files/packages.
//
// Loggers write to stderr: stdout carries msgpack frames in IPC mode.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New creates a new default charm log.
func New(prefix string) *log.Logger {
	return NewWithConfig(prefix, log.GetLevel(), false, true, log.TextFormatter)
}

// NewWithConfig creates a new charm log with custom config
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return newLogger(os.Stderr, prefix, level, caller, showTimestamp, fmt)
}

func newLogger(w io.Writer, prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}

// Setup points the package level charm logger at stderr and sets its level.
func Setup(debug bool) {
	log.SetOutput(os.Stderr)
	if debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportCaller(true)
		return
	}
	log.SetLevel(log.WarnLevel)
}
