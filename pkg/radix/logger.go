package radix

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/CVDpl/go-radix-trie/internal/common"
)

// Logger is the structured logger the trie reports to.
type Logger = common.Logger

// LogLevel is the severity threshold of a DefaultLogger.
type LogLevel = common.LogLevel

const (
	LogLevelDebug = common.LogLevelDebug
	LogLevelInfo  = common.LogLevelInfo
	LogLevelWarn  = common.LogLevelWarn
	LogLevelError = common.LogLevelError
)

// DefaultLogger implements the Logger interface with structured JSON logging.
type DefaultLogger struct {
	mu     sync.Mutex
	level  common.LogLevel
	logger *log.Logger
	fields map[string]interface{}
}

// NewDefaultLogger creates a new default logger writing to stderr.
func NewDefaultLogger() common.Logger {
	return NewDefaultLoggerTo(os.Stderr, common.LogLevelInfo)
}

// NewDefaultLoggerWithLevel creates a logger with a specific log level.
func NewDefaultLoggerWithLevel(level common.LogLevel) common.Logger {
	return NewDefaultLoggerTo(os.Stderr, level)
}

// NewDefaultLoggerTo creates a JSON logger writing one entry per line to w.
func NewDefaultLoggerTo(w io.Writer, level common.LogLevel) *DefaultLogger {
	return &DefaultLogger{
		level:  level,
		logger: log.New(w, "", 0),
		fields: make(map[string]interface{}),
	}
}

// Debug logs a debug message.
func (l *DefaultLogger) Debug(msg string, fields ...interface{}) {
	if l.level <= common.LogLevelDebug {
		l.log("DEBUG", msg, fields...)
	}
}

// Info logs an info message.
func (l *DefaultLogger) Info(msg string, fields ...interface{}) {
	if l.level <= common.LogLevelInfo {
		l.log("INFO", msg, fields...)
	}
}

// Warn logs a warning message.
func (l *DefaultLogger) Warn(msg string, fields ...interface{}) {
	if l.level <= common.LogLevelWarn {
		l.log("WARN", msg, fields...)
	}
}

// Error logs an error message.
func (l *DefaultLogger) Error(msg string, fields ...interface{}) {
	if l.level <= common.LogLevelError {
		l.log("ERROR", msg, fields...)
	}
}

// log formats and outputs a log message.
func (l *DefaultLogger) log(level, msg string, fields ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"level":     level,
		"message":   msg,
	}

	// Process fields as key-value pairs
	for i := 0; i < len(fields)-1; i += 2 {
		if key, ok := fields[i].(string); ok {
			entry[key] = fields[i+1]
		}
	}

	for k, v := range l.fields {
		if _, exists := entry[k]; !exists {
			entry[k] = v
		}
	}

	data, err := json.Marshal(entry)
	if err != nil {
		l.logger.Printf(`{"level":"ERROR","message":"failed to marshal log entry","error":"%s"}`, err)
		return
	}

	l.logger.Println(string(data))
}

// WithFields returns a logger with additional persistent fields.
func (l *DefaultLogger) WithFields(fields map[string]interface{}) common.Logger {
	newLogger := &DefaultLogger{
		level:  l.level,
		logger: l.logger,
		fields: make(map[string]interface{}, len(l.fields)+len(fields)),
	}
	for k, v := range l.fields {
		newLogger.fields[k] = v
	}
	for k, v := range fields {
		newLogger.fields[k] = v
	}
	return newLogger
}

// NewNullLogger creates a logger that discards all messages.
func NewNullLogger() common.Logger {
	return common.NewNullLogger()
}

// LoggerWithContext wraps a logger with contextual information.
type LoggerWithContext struct {
	logger common.Logger
	fields map[string]interface{}
}

// WithContext adds contextual fields to a logger.
func WithContext(logger common.Logger, fields map[string]interface{}) common.Logger {
	if logger == nil {
		logger = NewDefaultLogger()
	}

	// If it's already a LoggerWithContext, merge fields
	if lwc, ok := logger.(*LoggerWithContext); ok {
		newFields := make(map[string]interface{}, len(lwc.fields)+len(fields))
		for k, v := range lwc.fields {
			newFields[k] = v
		}
		for k, v := range fields {
			newFields[k] = v
		}
		return &LoggerWithContext{
			logger: lwc.logger,
			fields: newFields,
		}
	}

	return &LoggerWithContext{
		logger: logger,
		fields: fields,
	}
}

func (l *LoggerWithContext) Debug(msg string, fields ...interface{}) {
	l.logger.Debug(msg, l.mergeFields(fields...)...)
}

func (l *LoggerWithContext) Info(msg string, fields ...interface{}) {
	l.logger.Info(msg, l.mergeFields(fields...)...)
}

func (l *LoggerWithContext) Warn(msg string, fields ...interface{}) {
	l.logger.Warn(msg, l.mergeFields(fields...)...)
}

func (l *LoggerWithContext) Error(msg string, fields ...interface{}) {
	l.logger.Error(msg, l.mergeFields(fields...)...)
}

func (l *LoggerWithContext) mergeFields(fields ...interface{}) []interface{} {
	result := make([]interface{}, 0, len(fields)+len(l.fields)*2)
	for k, v := range l.fields {
		result = append(result, k, v)
	}
	return append(result, fields...)
}

// LogError is a helper to log an error with context.
func LogError(logger common.Logger, msg string, err error, fields ...interface{}) {
	allFields := append([]interface{}{"error", err.Error()}, fields...)
	logger.Error(msg, allFields...)
}
