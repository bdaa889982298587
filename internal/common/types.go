package common

import (
	"errors"
)

// Size limits
const (
	MaxKeySize         = 1024 * 1024 // 1MB max key size
	RecommendedKeySize = 64 * 1024   // 64KB recommended max
)

// Default configuration values
const (
	// DefaultMaxNodes bounds the node arena. Zero means unbounded.
	DefaultMaxNodes = 0
)

// Common errors
var (
	ErrInvalidKey       = errors.New("invalid key: nil")
	ErrKeyTooLarge      = errors.New("key exceeds maximum size")
	ErrCapacityExceeded = errors.New("node capacity exceeded")
	ErrDestroyed        = errors.New("trie is destroyed")
)

// Logger provides structured logging.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// String returns the lower-case level name.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "debug"
	case LogLevelInfo:
		return "info"
	case LogLevelWarn:
		return "warn"
	case LogLevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLogLevel maps a level name to a LogLevel. Unknown names yield LogLevelInfo and false.
func ParseLogLevel(s string) (LogLevel, bool) {
	switch s {
	case "debug", "DEBUG":
		return LogLevelDebug, true
	case "info", "INFO", "":
		return LogLevelInfo, true
	case "warn", "WARN", "warning":
		return LogLevelWarn, true
	case "error", "ERROR":
		return LogLevelError, true
	default:
		return LogLevelInfo, false
	}
}

// ValidateKey checks a key against the nil and size limits.
func ValidateKey(key []byte, maxSize int) error {
	if key == nil {
		return ErrInvalidKey
	}
	if maxSize <= 0 {
		maxSize = MaxKeySize
	}
	if len(key) > maxSize {
		return ErrKeyTooLarge
	}
	return nil
}
