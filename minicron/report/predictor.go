package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/LerianStudio/lib-minicron/minicron"
	"github.com/LerianStudio/lib-minicron/minicron/assert"
	constant "github.com/LerianStudio/lib-minicron/minicron/constants"
	"github.com/LerianStudio/lib-minicron/minicron/cron"
	"github.com/LerianStudio/lib-minicron/minicron/errgroup"
	"github.com/LerianStudio/lib-minicron/minicron/log"
)

// ErrNilPredictor is returned when Predict is called on a nil receiver.
var ErrNilPredictor = errors.New("report predictor is nil")

// Predictor predicts the next run of every job in a batch.
type Predictor struct {
	logger  log.Logger
	tracer  trace.Tracer
	workers int
}

// Option configures a Predictor.
type Option func(*Predictor)

// WithLogger sets the logger. Without it the logger carried by the
// context is used.
func WithLogger(logger log.Logger) Option {
	return func(p *Predictor) {
		p.logger = logger
	}
}

// WithTracer sets the tracer used for the batch span.
func WithTracer(tracer trace.Tracer) Option {
	return func(p *Predictor) {
		p.tracer = tracer
	}
}

// WithWorkers bounds the number of concurrent predictions. Values below one
// are ignored.
func WithWorkers(workers int) Option {
	return func(p *Predictor) {
		if workers >= 1 {
			p.workers = workers
		}
	}
}

// NewPredictor builds a Predictor.
func NewPredictor(opts ...Option) *Predictor {
	p := &Predictor{workers: constant.DefaultWorkers}

	for _, opt := range opts {
		opt(p)
	}

	if p.tracer == nil {
		p.tracer = otel.Tracer(constant.TracerName)
	}

	return p
}

// Predict parses currentTime once and predicts every job against it. A
// malformed currentTime fails the whole batch with cron.ErrInvalidTime.
// The returned lines follow the order of jobs.
func (p *Predictor) Predict(ctx context.Context, currentTime string, jobs []cron.Job) ([]Line, error) {
	if p == nil {
		violation := assert.New("report", nil).Never(ctx, "predict called on a nil predictor",
			log.Int("jobs", len(jobs)))

		return nil, fmt.Errorf("%w: %w", ErrNilPredictor, violation)
	}

	if ctx == nil {
		ctx = context.Background()
	}

	runID := newRunID()
	ctx = minicron.ContextWithRunID(ctx, runID)

	ctx, span := p.tracer.Start(ctx, constant.SpanPredict, trace.WithAttributes(
		attribute.String(constant.AttrRunID, runID),
		attribute.String(constant.AttrCurrentTime, currentTime),
		attribute.Int(constant.AttrJobCount, len(jobs)),
		attribute.Int(constant.AttrWorkers, p.workers),
	))
	defer span.End()

	logger := p.loggerFor(ctx).With(log.String("run_id", runID))
	started := time.Now()

	now, err := cron.ParseClockTime(currentTime)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid current time")
		logger.Log(ctx, log.LevelError, "rejecting batch", log.String("current_time", currentTime), log.Err(err))

		return nil, err
	}

	lines, err := p.predictAll(ctx, logger, now, jobs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "prediction failed")
		logger.Log(ctx, log.LevelError, "prediction failed", log.Err(err))

		return nil, err
	}

	today := countToday(lines)
	span.SetAttributes(attribute.Int(constant.AttrTodayCount, today))

	logger.Log(ctx, log.LevelInfo, "predicted next runs",
		log.String("current_time", now.String()),
		log.Int("jobs", len(jobs)),
		log.Int("today", today),
		log.Int("tomorrow", len(lines)-today),
		log.Duration("took", time.Since(started)),
	)

	return lines, nil
}

func (p *Predictor) predictAll(ctx context.Context, logger log.Logger, now cron.ClockTime, jobs []cron.Job) ([]Line, error) {
	lines := make([]Line, len(jobs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLogger(logger)
	group.SetLimit(p.workers)

	for i, job := range jobs {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			prediction, err := cron.PredictAt(now, job)
			if err != nil {
				return fmt.Errorf("job %d (%s): %w", i+1, job.Command, err)
			}

			lines[i] = Line{Job: job, Prediction: prediction}

			if logger.Enabled(log.LevelDebug) {
				logger.Log(groupCtx, log.LevelDebug, "predicted job",
					log.String("command", job.Command),
					log.String("minute", job.Minute),
					log.String("hour", job.Hour),
					log.String("day", string(prediction.Day)),
					log.String("at", prediction.Hour+":"+prediction.Minute),
				)
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return lines, nil
}

func (p *Predictor) loggerFor(ctx context.Context) log.Logger {
	if p.logger != nil {
		return p.logger
	}

	return minicron.NewLoggerFromContext(ctx)
}

func countToday(lines []Line) int {
	today := 0

	for _, line := range lines {
		if line.Prediction.Day == cron.DayToday {
			today++
		}
	}

	return today
}

// newRunID returns a UUIDv7, falling back to a random v4 if the clock-based
// generator fails.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}
