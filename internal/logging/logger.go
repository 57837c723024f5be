package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Logger is the global logger instance. It is usable before Init is called.
var Logger = newLogger(os.Stderr, log.InfoLevel, false)

// Options configures the global logger
type Options struct {
	Level  string    // debug, info, warn or error
	JSON   bool      // JSON lines instead of text
	Output io.Writer // defaults to stderr
}

func newLogger(w io.Writer, level log.Level, json bool) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
	})
	if json {
		l.SetFormatter(log.JSONFormatter)
	}
	return l
}

// ParseLevel converts a level name into a log level
func ParseLevel(level string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return log.InfoLevel, nil
	case "debug":
		return log.DebugLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

// Init replaces the global logger. An unknown level falls back to info and
// is reported as an error after the logger is installed.
func Init(opts Options) error {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level, err := ParseLevel(opts.Level)
	Logger = newLogger(out, level, opts.JSON)
	return err
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

// WithPrefix returns a logger with a prefix
func WithPrefix(prefix string) *log.Logger {
	return Logger.WithPrefix(prefix)
}
