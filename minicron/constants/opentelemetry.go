package constants

// Telemetry names.
const (
	// TracerName is the instrumentation scope of minicron spans.
	TracerName = "github.com/LerianStudio/lib-minicron/minicron/report"
	// SpanRun wraps one CLI invocation.
	SpanRun = "minicron.run"
	// SpanPredict is the span wrapping one batch prediction.
	SpanPredict = "minicron.predict"
	// EventInvariantViolated is recorded on spans when an invariant check fails.
	EventInvariantViolated = "minicron.invariant.violated"
	// EventPanicRecovered is recorded when a prediction worker panics.
	EventPanicRecovered = "minicron.panic.recovered"
	// EventJobRejected is recorded for each schedule line that fails validation.
	EventJobRejected = "minicron.job.rejected"

	AttrRunID       = "minicron.run_id"
	AttrCurrentTime = "minicron.current_time"
	AttrJobCount    = "minicron.job_count"
	AttrWorkers     = "minicron.workers"
	AttrTodayCount  = "minicron.today_count"
	AttrLine        = "minicron.line"
	AttrRejected    = "minicron.rejected_count"
)
