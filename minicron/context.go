package minicron

import (
	"context"

	"github.com/LerianStudio/lib-minicron/minicron/log"
)

type customContextKey string

// CustomContextKey is the context key used to store CustomContextKeyValue.
var CustomContextKey = customContextKey("custom_context")

// CustomContextKeyValue holds the run-scoped facilities attached to context.
type CustomContextKeyValue struct {
	Logger log.Logger
	RunID  string
}

// NewLoggerFromContext extracts the Logger stored by ContextWithLogger, or a
// no-op logger when there is none.
//
//nolint:ireturn
func NewLoggerFromContext(ctx context.Context) log.Logger {
	if ctx == nil {
		return log.NewNop()
	}

	if customContext, ok := ctx.Value(CustomContextKey).(*CustomContextKeyValue); ok &&
		customContext.Logger != nil {
		return customContext.Logger
	}

	return log.NewNop()
}

// ContextWithLogger returns a context carrying logger.
func ContextWithLogger(ctx context.Context, logger log.Logger) context.Context {
	values := cloneValues(ctx)
	values.Logger = logger

	return context.WithValue(ctx, CustomContextKey, values)
}

// ContextWithRunID returns a context carrying the prediction run ID.
func ContextWithRunID(ctx context.Context, runID string) context.Context {
	values := cloneValues(ctx)
	values.RunID = runID

	return context.WithValue(ctx, CustomContextKey, values)
}

// RunIDFromContext returns the run ID stored by ContextWithRunID.
func RunIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	if customContext, ok := ctx.Value(CustomContextKey).(*CustomContextKeyValue); ok {
		return customContext.RunID
	}

	return ""
}

// cloneValues copies the stored values so a derived context never mutates
// its parent's.
func cloneValues(ctx context.Context) *CustomContextKeyValue {
	values := &CustomContextKeyValue{}

	if existing, ok := ctx.Value(CustomContextKey).(*CustomContextKeyValue); ok && existing != nil {
		*values = *existing
	}

	return values
}
