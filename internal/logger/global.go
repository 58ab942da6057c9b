package logger

import (
	"fmt"
	"strings"
	"sync/atomic"
)

var globalLogger atomic.Pointer[Logger]

func init() {
	globalLogger.Store(NewDefault())
}

// ParseLevel parses a log level name
func ParseLevel(level string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO", "":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "FATAL":
		return FATAL, nil
	default:
		return INFO, fmt.Errorf("unknown log level %q", level)
	}
}

// ParseFormat parses a log format name. "auto" selects text output for
// local environments and JSON everywhere else.
func ParseFormat(format string, local bool) (LogFormat, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return JSONFormat, nil
	case "text":
		return TextFormat, nil
	case "auto", "":
		if local {
			return TextFormat, nil
		}
		return JSONFormat, nil
	default:
		return JSONFormat, fmt.Errorf("unknown log format %q", format)
	}
}

// Configure replaces the global logger with one built from configuration strings
func Configure(level, format string, local bool) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	f, err := ParseFormat(format, local)
	if err != nil {
		return err
	}
	SetGlobalLogger(New(Config{Level: lvl, Format: f}))
	return nil
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() *Logger {
	return globalLogger.Load()
}

// SetGlobalLogger sets the global logger instance
func SetGlobalLogger(logger *Logger) {
	globalLogger.Store(logger)
}

// Component returns a child of the global logger tagged with component
func Component(name string) *Logger {
	return GetGlobalLogger().WithComponent(name)
}

// Debug logs a debug message using the global logger
func Debug(message string, fields ...Fields) {
	GetGlobalLogger().log(2, DEBUG, message, firstFields(fields), nil)
}

// Info logs an info message using the global logger
func Info(message string, fields ...Fields) {
	GetGlobalLogger().log(2, INFO, message, firstFields(fields), nil)
}

// Warn logs a warning message using the global logger
func Warn(message string, fields ...Fields) {
	GetGlobalLogger().log(2, WARN, message, firstFields(fields), nil)
}

// Error logs an error message using the global logger
func Error(message string, err error, fields ...Fields) {
	GetGlobalLogger().log(2, ERROR, message, firstFields(fields), err)
}

// Fatal logs a fatal message using the global logger and exits
func Fatal(message string, err error, fields ...Fields) {
	GetGlobalLogger().log(2, FATAL, message, firstFields(fields), err)
}

// Infof logs a formatted info message using the global logger
func Infof(format string, args ...interface{}) {
	GetGlobalLogger().log(2, INFO, fmt.Sprintf(format, args...), nil, nil)
}

// Warnf logs a formatted warning message using the global logger
func Warnf(format string, args ...interface{}) {
	GetGlobalLogger().log(2, WARN, fmt.Sprintf(format, args...), nil, nil)
}
