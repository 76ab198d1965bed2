// Package logger provides leveled logging for the kavach CLI.
// Warnings and errors are always written to stderr. When verbose mode is
// enabled via the --verbose flag, debug and info messages are written too,
// tracing geometry reports, placements and backend round trips.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	level   = new(slog.LevelVar)
	output  io.Writer = os.Stderr
	base    *slog.Logger
)

func init() {
	level.Set(slog.LevelWarn)
	rebuild()
}

// rebuild recreates the slog logger for the current output (caller holds mu
// or runs during init).
func rebuild() {
	h := slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	base = slog.New(h)
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	if v {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelWarn)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	return level.Level() <= slog.LevelDebug
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	rebuild()
}

// Logger returns the underlying structured logger, for adapters that take
// a *slog.Logger.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Debug logs a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	log(slog.LevelDebug, format, args...)
}

// Info logs an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	log(slog.LevelInfo, format, args...)
}

// Warn logs a warning.
func Warn(format string, args ...any) {
	log(slog.LevelWarn, format, args...)
}

// Error logs an error.
func Error(format string, args ...any) {
	log(slog.LevelError, format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	if !IsVerbose() {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	fmt.Fprintf(output, "\n=== %s ===\n", name)
}

func log(l slog.Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	ctx := context.Background()
	if !base.Enabled(ctx, l) {
		return
	}
	base.Log(ctx, l, fmt.Sprintf(format, args...))
}
