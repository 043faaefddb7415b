package cron

import (
	"context"
	"fmt"

	"github.com/LerianStudio/lib-minicron/minicron/assert"
	constant "github.com/LerianStudio/lib-minicron/minicron/constants"
	"github.com/LerianStudio/lib-minicron/minicron/log"
)

// Day tags a prediction as later today or tomorrow.
type Day string

const (
	DayToday    Day = constant.DayToday
	DayTomorrow Day = constant.DayTomorrow
)

// Prediction is the next run of a job. Hour and Minute are two-digit
// zero-padded strings.
type Prediction struct {
	Day    Day
	Hour   string
	Minute string
}

// PredictNextRun parses currentTime and predicts the next run of job.
// A malformed currentTime returns ErrInvalidTime; an invalid job returns
// ErrInvalidJob.
func PredictNextRun(currentTime string, job Job) (Prediction, error) {
	now, err := ParseClockTime(currentTime)
	if err != nil {
		return Prediction{}, err
	}

	return PredictAt(now, job)
}

// PredictAt predicts the next run of job relative to now. Candidates are
// scanned hour-major, minute-minor. The first one at or after now runs
// today (an exact match is due now); when none is left, the first candidate
// of the day runs tomorrow.
func PredictAt(now ClockTime, job Job) (Prediction, error) {
	if err := ValidateJob(job); err != nil {
		return Prediction{}, err
	}

	candidates, err := candidatesOf(job)
	if err != nil {
		return Prediction{}, err
	}

	if err := assert.New("cron", nil).That(context.Background(), len(candidates) > 0,
		"validated job produced no candidates",
		log.String("minute", job.Minute), log.String("hour", job.Hour)); err != nil {
		return Prediction{}, err
	}

	for _, candidate := range candidates {
		if !candidate.Before(now) {
			return newPrediction(DayToday, candidate), nil
		}
	}

	return newPrediction(DayTomorrow, candidates[0]), nil
}

// candidatesOf is the cartesian product of the job's hours and minutes,
// hours outer, both ascending.
func candidatesOf(job Job) ([]ClockTime, error) {
	hours, err := ExpandField(job.Hour, constant.MaxHour)
	if err != nil {
		return nil, fmt.Errorf("hour: %w", err)
	}

	minutes, err := ExpandField(job.Minute, constant.MaxMinute)
	if err != nil {
		return nil, fmt.Errorf("minute: %w", err)
	}

	candidates := make([]ClockTime, 0, len(hours)*len(minutes))

	for _, hour := range hours {
		for _, minute := range minutes {
			candidates = append(candidates, ClockTime{Hour: hour, Minute: minute})
		}
	}

	return candidates, nil
}

func newPrediction(day Day, at ClockTime) Prediction {
	return Prediction{
		Day:    day,
		Hour:   fmt.Sprintf("%02d", at.Hour),
		Minute: fmt.Sprintf("%02d", at.Minute),
	}
}
