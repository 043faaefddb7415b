package cron

import (
	"fmt"
	"strings"

	constant "github.com/LerianStudio/lib-minicron/minicron/constants"
)

// Rejection describes a schedule line that was dropped.
type Rejection struct {
	// Line is the 1-based line number in the trimmed input.
	Line int
	Text string
	Err  error
}

// ParseInput converts schedule text into valid jobs, in input order.
// Invalid lines are dropped silently. Empty input yields an empty slice.
func ParseInput(text string) []Job {
	jobs, _ := ParseLines(text)

	return jobs
}

// ParseLines is ParseInput that also returns the rejected lines. Blank lines
// are skipped without a rejection.
func ParseLines(text string) ([]Job, []Rejection) {
	jobs := make([]Job, 0)

	text = strings.TrimSpace(text)
	if text == "" {
		return jobs, nil
	}

	var rejected []Rejection

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		job, err := ParseLine(line)
		if err != nil {
			rejected = append(rejected, Rejection{Line: i + 1, Text: line, Err: err})

			continue
		}

		jobs = append(jobs, job)
	}

	return jobs, rejected
}

// ParseLine parses one "<minute> <hour> <command>" line. Only the first three
// tokens are read; anything after the command is ignored.
func ParseLine(line string) (Job, error) {
	fields := strings.Fields(line)
	if len(fields) < constant.LineFieldCount {
		return Job{}, fmt.Errorf("%w: expected %d fields, got %d", ErrInvalidJob, constant.LineFieldCount, len(fields))
	}

	job := Job{
		Minute:  fields[0],
		Hour:    fields[1],
		Command: fields[2],
	}

	if err := ValidateJob(job); err != nil {
		return Job{}, err
	}

	return job, nil
}
