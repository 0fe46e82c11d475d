// Package logger wraps charmbracelet/log with a Trace level and a global
// default instance used across the CLI.
package logger

import (
	"math"
	"strings"

	charm "github.com/charmbracelet/log"

	errUtils "github.com/matrixci/matrixci/errors"
)

// TraceLevel is one step more verbose than charm's DebugLevel.
const TraceLevel = charm.DebugLevel - 1

// OffLevel disables all output.
const OffLevel = charm.Level(math.MaxInt32)

// ParseLevel converts a level name from config or flags into a charm level.
// An empty string defaults to Info.
func ParseLevel(level string) (charm.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "":
		return charm.InfoLevel, nil
	case "trace":
		return TraceLevel, nil
	case "debug":
		return charm.DebugLevel, nil
	case "info":
		return charm.InfoLevel, nil
	case "warning", "warn":
		return charm.WarnLevel, nil
	case "off":
		return OffLevel, nil
	default:
		return charm.InfoLevel, errUtils.Wrapf(errUtils.ErrInvalidLogLevel,
			"'%s'. Supported log levels are Trace, Debug, Info, Warning, Off", level)
	}
}

// Trace logs a message at trace level with optional key-value pairs.
func Trace(msg any, keyvals ...any) {
	Default().Log(TraceLevel, msg, keyvals...)
}

// Debug logs a message at debug level with optional key-value pairs.
func Debug(msg any, keyvals ...any) {
	Default().Debug(msg, keyvals...)
}

// Info logs a message at info level with optional key-value pairs.
func Info(msg any, keyvals ...any) {
	Default().Info(msg, keyvals...)
}

// Warn logs a message at warn level with optional key-value pairs.
func Warn(msg any, keyvals ...any) {
	Default().Warn(msg, keyvals...)
}

// Error logs a message at error level with optional key-value pairs.
func Error(msg any, keyvals ...any) {
	Default().Error(msg, keyvals...)
}

// SetLevel sets the level on the global default logger.
func SetLevel(level charm.Level) {
	Default().SetLevel(level)
}

// GetLevel returns the level of the global default logger.
func GetLevel() charm.Level {
	return Default().GetLevel()
}
