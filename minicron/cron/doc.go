// Package cron parses two-field daily schedules and predicts their next run.
//
// A schedule line has three whitespace-separated tokens:
//
//	┌───────────── minute (0-59 or *)
//	│ ┌───────────── hour (0-23 or *)
//	│ │ ┌───────────── command (no spaces)
//	│ │ │
//	30 1 /bin/run_me_daily
//
// There are no day, month or weekday fields and no lists, ranges or steps.
// Invalid lines are dropped by ParseInput; ParseLine and ParseLines report
// why. PredictNextRun returns the first matching time of day at or after the
// current time, or the first occurrence tomorrow when none remain today.
// Times carry no timezone.
package cron
