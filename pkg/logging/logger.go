// Package logging provides the leveled logging used across rsdiff. Loggers
// are nil-safe and derive hierarchical prefixes, so library code can accept a
// logger without caring whether one was configured.
package logging

import (
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/fatih/color"
)

func init() {
	// Send the standard logger to standard error so that log output never
	// mixes with command output on standard output.
	log.SetOutput(os.Stderr)
}

// Level represents a log level. Higher values log more.
type Level uint

const (
	// LevelDisabled indicates that logging is completely disabled.
	LevelDisabled Level = iota
	// LevelError indicates that only errors are logged.
	LevelError
	// LevelWarn indicates that warnings are logged in addition to errors.
	LevelWarn
	// LevelInfo indicates that basic execution information is logged in
	// addition to warnings and errors.
	LevelInfo
	// LevelDebug indicates that advanced execution information is logged in
	// addition to everything else.
	LevelDebug
)

// levelNames maps level names to values for parsing and formatting.
var levelNames = map[string]Level{
	"disabled": LevelDisabled,
	"error":    LevelError,
	"warn":     LevelWarn,
	"info":     LevelInfo,
	"debug":    LevelDebug,
}

// ParseLevel converts a string-based representation of a log level to the
// corresponding Level value.
func ParseLevel(name string) (Level, error) {
	if level, ok := levelNames[name]; ok {
		return level, nil
	}
	return LevelDisabled, errors.Errorf("unknown log level: %q", name)
}

// String provides a human-readable representation of a log level.
func (l Level) String() string {
	for name, level := range levelNames {
		if level == l {
			return name
		}
	}
	return "unknown"
}

// currentLevel is the level at and below which messages are emitted.
var currentLevel = LevelWarn

// SetLevel adjusts the active log level for all loggers.
func SetLevel(level Level) {
	currentLevel = level
}

// Logger is the main logger type. It has the novel property that it still
// functions if nil, but it doesn't log anything. It is designed to use the
// standard logger provided by the log package, so it respects any flags set
// for that logger.
type Logger struct {
	// prefix is any prefix specified for the logger.
	prefix string
}

// RootLogger is the root logger from which all other loggers derive.
var RootLogger = &Logger{}

// Sublogger creates a new sublogger with the specified name.
func (l *Logger) Sublogger(name string) *Logger {
	// If the logger is nil, then the sublogger will be as well.
	if l == nil {
		return nil
	}

	// Compute the new prefix.
	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "." + name
	}

	// Create the new logger.
	return &Logger{
		prefix: prefix,
	}
}

// output is the internal logging method.
func (l *Logger) output(line string) {
	// Add a prefix if necessary.
	if l.prefix != "" {
		line = fmt.Sprintf("[%s] %s", l.prefix, line)
	}

	// Log.
	log.Output(3, line)
}

// Error logs error information with an error prefix and red color.
func (l *Logger) Error(err error) {
	if l != nil && currentLevel >= LevelError {
		l.output(color.RedString("Error: %v", err))
	}
}

// Warn logs error information with a warning prefix and yellow color.
func (l *Logger) Warn(err error) {
	if l != nil && currentLevel >= LevelWarn {
		l.output(color.YellowString("Warning: %v", err))
	}
}

// Info logs information with semantics equivalent to fmt.Sprintf.
func (l *Logger) Info(format string, v ...interface{}) {
	if l != nil && currentLevel >= LevelInfo {
		l.output(fmt.Sprintf(format, v...))
	}
}

// Debug logs advanced execution information with semantics equivalent to
// fmt.Sprintf.
func (l *Logger) Debug(format string, v ...interface{}) {
	if l != nil && currentLevel >= LevelDebug {
		l.output(fmt.Sprintf(format, v...))
	}
}
