package zap

import (
	"context"

	logpkg "github.com/LerianStudio/lib-minicron/minicron/log"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger adapts a *zap.Logger to log.Logger.
type Logger struct {
	zl *zap.Logger
}

var _ logpkg.Logger = (*Logger)(nil)

// NewWithCore builds a Logger over an existing core, for custom sinks and
// for observing entries in tests.
func NewWithCore(core zapcore.Core) *Logger {
	return &Logger{zl: zap.New(core)}
}

func (l *Logger) base() *zap.Logger {
	if l == nil || l.zl == nil {
		return zap.NewNop()
	}

	return l.zl
}

// Log writes one entry. When ctx carries a valid span context the entry
// gains trace_id and span_id so batch logs line up with minicron.predict.
func (l *Logger) Log(ctx context.Context, level logpkg.Level, msg string, fields ...logpkg.Field) {
	zl := l.base()

	ce := zl.Check(toZapLevel(level), sanitizeString(msg))
	if ce == nil {
		return
	}

	zapFields := toZapFields(fields)

	if ctx != nil {
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			zapFields = append(zapFields,
				zap.String("trace_id", sc.TraceID().String()),
				zap.String("span_id", sc.SpanID().String()),
			)
		}
	}

	ce.Write(zapFields...)
}

//nolint:ireturn
func (l *Logger) With(fields ...logpkg.Field) logpkg.Logger {
	return &Logger{zl: l.base().With(toZapFields(fields)...)}
}

// WithGroup nests every later field under name.
//
//nolint:ireturn
func (l *Logger) WithGroup(name string) logpkg.Logger {
	return &Logger{zl: l.base().With(zap.Namespace(name))}
}

func (l *Logger) Enabled(level logpkg.Level) bool {
	return l.base().Core().Enabled(toZapLevel(level))
}

// Sync flushes the sink. It gives up when ctx is done first.
func (l *Logger) Sync(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan error, 1)

	go func() { done <- l.base().Sync() }()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

func toZapLevel(level logpkg.Level) zapcore.Level {
	switch level {
	case logpkg.LevelDebug:
		return zapcore.DebugLevel
	case logpkg.LevelWarn:
		return zapcore.WarnLevel
	case logpkg.LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// toZapFields escapes string values; commands come straight from stdin.
func toZapFields(fields []logpkg.Field) []zap.Field {
	out := make([]zap.Field, len(fields))

	for i, f := range fields {
		switch v := f.Value.(type) {
		case string:
			out[i] = zap.String(f.Key, sanitizeString(v))
		case int:
			out[i] = zap.Int(f.Key, v)
		case error:
			out[i] = zap.NamedError(f.Key, v)
		default:
			out[i] = zap.Any(f.Key, v)
		}
	}

	return out
}
