package radix

import (
	"github.com/rs/zerolog"

	"github.com/CVDpl/go-radix-trie/internal/common"
)

// ZerologLogger adapts a zerolog.Logger to the Logger interface.
type ZerologLogger struct {
	zl zerolog.Logger
}

// NewZerologLogger wraps zl.
func NewZerologLogger(zl zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{zl: zl}
}

func (l *ZerologLogger) Debug(msg string, fields ...interface{}) {
	l.emit(l.zl.Debug(), msg, fields)
}

func (l *ZerologLogger) Info(msg string, fields ...interface{}) {
	l.emit(l.zl.Info(), msg, fields)
}

func (l *ZerologLogger) Warn(msg string, fields ...interface{}) {
	l.emit(l.zl.Warn(), msg, fields)
}

func (l *ZerologLogger) Error(msg string, fields ...interface{}) {
	l.emit(l.zl.Error(), msg, fields)
}

func (l *ZerologLogger) emit(e *zerolog.Event, msg string, fields []interface{}) {
	// e is nil when the level is disabled
	if e == nil {
		return
	}
	for i := 0; i < len(fields)-1; i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		switch v := fields[i+1].(type) {
		case error:
			e = e.AnErr(key, v)
		case string:
			e = e.Str(key, v)
		case []byte:
			e = e.Bytes(key, v)
		default:
			e = e.Interface(key, v)
		}
	}
	e.Msg(msg)
}

// ZerologLevel maps a LogLevel onto zerolog's levels.
func ZerologLevel(level common.LogLevel) zerolog.Level {
	switch level {
	case common.LogLevelDebug:
		return zerolog.DebugLevel
	case common.LogLevelWarn:
		return zerolog.WarnLevel
	case common.LogLevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
