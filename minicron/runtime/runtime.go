package runtime

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/LerianStudio/lib-minicron/minicron"
	constant "github.com/LerianStudio/lib-minicron/minicron/constants"
	"github.com/LerianStudio/lib-minicron/minicron/log"
)

const redactedPanicMsg = "panic recovered (details redacted)"

var productionMode atomic.Bool

// SetProductionMode toggles redaction of panic values and stack traces.
// The CLI turns it on when ENV_NAME is production.
func SetProductionMode(enabled bool) { productionMode.Store(enabled) }

// IsProductionMode reports the current redaction setting.
func IsProductionMode() bool { return productionMode.Load() }

// HandlePanicValue reports a value the caller already recovered. It logs
// through logger, or the context logger when logger is nil, tags the entry
// with the run ID and marks the active span. A nil value is ignored.
func HandlePanicValue(ctx context.Context, logger log.Logger, panicValue any, component, name string) {
	if panicValue == nil {
		return
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if logger == nil {
		logger = minicron.NewLoggerFromContext(ctx)
	}

	redact := IsProductionMode()
	message := describePanic(panicValue, redact)

	fields := []log.Field{
		log.String("component", component),
		log.String("goroutine_name", name),
		log.String("panic", message),
	}

	if runID := minicron.RunIDFromContext(ctx); runID != "" {
		fields = append(fields, log.String("run_id", runID))
	}

	if !redact {
		fields = append(fields, log.String("stack_trace", string(debug.Stack())))
	}

	logger.Log(ctx, log.LevelError, "panic recovered", fields...)

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.AddEvent(constant.EventPanicRecovered, trace.WithAttributes(
			attribute.String("panic.value", message),
			attribute.String("panic.component", component),
			attribute.String("panic.goroutine_name", name),
		))
		span.SetStatus(codes.Error, "panic recovered in "+component)
	}
}

func describePanic(value any, redact bool) string {
	if redact {
		return redactedPanicMsg
	}

	if err, ok := value.(error); ok {
		return err.Error()
	}

	return fmt.Sprint(value)
}
