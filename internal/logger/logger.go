// Package logger provides verbose diagnostic logging for the CLI.
// When verbose mode is enabled via the --verbose flag, messages are
// printed to stderr so pipeline progress and skipped documents are
// visible without polluting stdout.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// SetOutput sets the writer verbose logs go to. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debugf prints a debug message if verbose mode is enabled.
func Debugf(format string, args ...any) {
	logf("DEBUG", format, args...)
}

// Infof prints an informational message if verbose mode is enabled.
func Infof(format string, args ...any) {
	logf("INFO", format, args...)
}

// Warnf prints a warning message if verbose mode is enabled.
func Warnf(format string, args ...any) {
	logf("WARN", format, args...)
}

func logf(level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "["+level+"] "+format+"\n", args...)
	}
}
