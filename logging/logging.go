// Package logging points the shared charmbracelet logger at a file.
// The terminal belongs to the TUI, so nothing is written to stderr while it runs.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultLogFile returns the log file path next to the settings file.
func DefaultLogFile(settingsPath string) string {
	return filepath.Join(filepath.Dir(settingsPath), "m4.log")
}

// Setup configures the default logger. The returned closer must be called on exit.
// An empty path discards all output.
func Setup(path string, debug bool) (io.Closer, error) {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	if path == "" {
		log.SetDefault(newLogger(io.Discard, level))
		return io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640)
	if err != nil {
		return nil, fmt.Errorf("could not open log file %s: %w", path, err)
	}

	log.SetDefault(newLogger(file, level))
	return file, nil
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "m4",
	})
}
