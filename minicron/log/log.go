package log

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Logger is what minicron packages log through. The zap package provides
// the production implementation; NewNop discards everything.
type Logger interface {
	Log(ctx context.Context, level Level, msg string, fields ...Field)
	With(fields ...Field) Logger
	WithGroup(name string) Logger
	Enabled(level Level) bool
	Sync(ctx context.Context) error
}

// Level is a log severity. Higher values are more severe.
type Level int8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
}

func (level Level) String() string {
	if level < LevelDebug || level > LevelError {
		return "unknown"
	}

	return levelNames[level]
}

// ParseLevel accepts the LOG_LEVEL spellings, case-insensitively.
// "warning" is an alias of "warn".
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "warning" {
		return LevelWarn, nil
	}

	for level, levelName := range levelNames {
		if name == levelName {
			return Level(level), nil
		}
	}

	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Field is one key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// String carries text. Commands read from a schedule are logged with it so
// adapters can escape control characters.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int carries counters and line numbers.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Duration carries elapsed time.
func Duration(key string, value time.Duration) Field { return Field{Key: key, Value: value} }

// Err is the conventional "error" field.
func Err(err error) Field { return Field{Key: "error", Value: err} }
