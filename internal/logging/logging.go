// Package logging provides centralized logging functionality for jwtengine
// applications (the bridge service and the jwtctl command). The jwt package
// itself never logs.
//
// All components should use this package instead of creating their own
// loggers to ensure consistency across the codebase.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kataras/jwtengine/internal/logging/logfields"
)

// LogLevel represents the different log levels
type LogLevel string

const (
	LogLevelTrace LogLevel = "trace"
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat represents the different log output formats
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

const timestampFormat = "2006-01-02T15:04:05.000Z07:00"

// defaultLogger is the global logger instance
var defaultLogger *logrus.Logger

func init() {
	defaultLogger = logrus.New()
	defaultLogger.SetLevel(logrus.InfoLevel)
	defaultLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	defaultLogger.SetOutput(os.Stderr)
}

// SetupLogging configures the global logger with the provided options.
// A nil output keeps the current one.
func SetupLogging(level LogLevel, format LogFormat, output io.Writer) error {
	logrusLevel, err := ParseLogLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	formatter, err := Formatter(format)
	if err != nil {
		return err
	}

	defaultLogger.SetLevel(logrusLevel)
	defaultLogger.SetFormatter(formatter)
	if output != nil {
		defaultLogger.SetOutput(output)
	}

	return nil
}

// ParseLogLevel converts a string log level to logrus.Level
func ParseLogLevel(level LogLevel) (logrus.Level, error) {
	switch strings.ToLower(string(level)) {
	case "trace":
		return logrus.TraceLevel, nil
	case "debug":
		return logrus.DebugLevel, nil
	case "info", "":
		return logrus.InfoLevel, nil
	case "warn", "warning":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	default:
		return logrus.InfoLevel, fmt.Errorf("unknown log level: %s", level)
	}
}

// Formatter returns the logrus formatter of a log format.
func Formatter(format LogFormat) (logrus.Formatter, error) {
	switch LogFormat(strings.ToLower(string(format))) {
	case LogFormatJSON:
		return &logrus.JSONFormatter{TimestampFormat: timestampFormat}, nil
	case LogFormatText, "":
		return &logrus.TextFormatter{FullTimestamp: true, TimestampFormat: timestampFormat}, nil
	default:
		return nil, fmt.Errorf("unsupported log format: %s", format)
	}
}

// AvailableLogLevels returns the accepted level names, comma separated.
func AvailableLogLevels() string {
	return strings.Join([]string{
		string(LogLevelTrace),
		string(LogLevelDebug),
		string(LogLevelInfo),
		string(LogLevelWarn),
		string(LogLevelError),
	}, ", ")
}

// ComponentLogger creates a logger for a specific component with the component field pre-set
func ComponentLogger(component string) *logrus.Entry {
	return defaultLogger.WithField(logfields.Component, component)
}

// ModuleLogger creates a logger for a specific module with the module field pre-set
func ModuleLogger(module string) *logrus.Entry {
	return defaultLogger.WithField(logfields.Module, module)
}

// OperationLogger creates a logger with the context of one token operation.
// The algorithm may be empty when it is not known yet.
func OperationLogger(entry *logrus.Entry, operation, algorithm string) *logrus.Entry {
	fields := logrus.Fields{logfields.Operation: operation}
	if algorithm != "" {
		fields[logfields.Algorithm] = algorithm
	}
	return entry.WithFields(fields)
}

// ResultFields returns the fields describing the outcome of an operation:
// its duration and, on failure, the error kind and message.
func ResultFields(kind string, err error, duration time.Duration) logrus.Fields {
	fields := logrus.Fields{
		logfields.Duration: duration.String(),
		logfields.Result:   "success",
	}
	if err != nil {
		fields[logfields.Result] = "failure"
		fields[logfields.ErrorKind] = kind
		fields[logfields.Error] = err.Error()
	}
	return fields
}
