package assert

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/LerianStudio/lib-minicron/minicron"
	constant "github.com/LerianStudio/lib-minicron/minicron/constants"
	"github.com/LerianStudio/lib-minicron/minicron/log"
	"github.com/LerianStudio/lib-minicron/minicron/runtime"
)

// ErrViolated is wrapped by every *Violation.
var ErrViolated = errors.New("invariant violated")

// Violation describes a failed invariant. Fields hold the job or batch
// values that broke it.
type Violation struct {
	Component string
	Message   string
	RunID     string
	Fields    []log.Field
}

func (v *Violation) Error() string {
	if v == nil {
		return ErrViolated.Error()
	}

	var sb strings.Builder

	if v.Component != "" {
		sb.WriteString(v.Component)
		sb.WriteString(": ")
	}

	sb.WriteString(ErrViolated.Error())
	sb.WriteString(": ")
	sb.WriteString(v.Message)

	if len(v.Fields) > 0 {
		pairs := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			pairs[i] = fmt.Sprintf("%s=%v", f.Key, f.Value)
		}

		sb.WriteString(" (")
		sb.WriteString(strings.Join(pairs, " "))
		sb.WriteString(")")
	}

	return sb.String()
}

func (v *Violation) Unwrap() error { return ErrViolated }

// Checker reports violations on behalf of one component.
type Checker struct {
	component string
	logger    log.Logger
}

// New returns a Checker for component. A nil logger means the logger
// carried by the context at failure time.
func New(component string, logger log.Logger) *Checker {
	return &Checker{component: component, logger: logger}
}

// That returns a *Violation when ok is false and nil otherwise.
func (c *Checker) That(ctx context.Context, ok bool, msg string, fields ...log.Field) error {
	if ok {
		return nil
	}

	return c.violate(ctx, msg, fields)
}

// Never always returns a *Violation. It marks branches valid input cannot
// reach.
func (c *Checker) Never(ctx context.Context, msg string, fields ...log.Field) error {
	return c.violate(ctx, msg, fields)
}

func (c *Checker) violate(ctx context.Context, msg string, fields []log.Field) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var component string

	var logger log.Logger

	if c != nil {
		component, logger = c.component, c.logger
	}

	if logger == nil {
		logger = minicron.NewLoggerFromContext(ctx)
	}

	violation := &Violation{
		Component: component,
		Message:   msg,
		RunID:     minicron.RunIDFromContext(ctx),
		Fields:    fields,
	}

	entry := make([]log.Field, 0, len(fields)+3)
	entry = append(entry, log.String("component", component))

	if violation.RunID != "" {
		entry = append(entry, log.String("run_id", violation.RunID))
	}

	entry = append(entry, fields...)

	if !runtime.IsProductionMode() {
		entry = append(entry, log.String("stack_trace", string(debug.Stack())))
	}

	logger.Log(ctx, log.LevelError, "invariant violated: "+msg, entry...)
	markSpan(ctx, violation)

	return violation
}

func markSpan(ctx context.Context, violation *Violation) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("invariant.component", violation.Component),
		attribute.String("invariant.message", violation.Message),
	}

	for _, f := range violation.Fields {
		attrs = append(attrs, attribute.String("invariant."+f.Key, fmt.Sprint(f.Value)))
	}

	span.AddEvent(constant.EventInvariantViolated, trace.WithAttributes(attrs...))
	span.RecordError(violation)
	span.SetStatus(codes.Error, violation.Error())
}
