package cron

import (
	"errors"
	"fmt"
	"strings"

	constant "github.com/LerianStudio/lib-minicron/minicron/constants"
)

// ErrInvalidTime is returned when the current time is not a valid HH:MM.
var ErrInvalidTime = errors.New("invalid current time")

// maxClockDigits is the widest hour or minute component accepted.
const maxClockDigits = 2

// ClockTime is a time of day with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses a 24-hour "HH:MM" string. Zero padding is optional,
// so "9:05", "09:5" and "09:05" are all 09:05.
func ParseClockTime(s string) (ClockTime, error) {
	hourPart, minutePart, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return ClockTime{}, fmt.Errorf("%w: %q is not HH:MM", ErrInvalidTime, s)
	}

	hour, err := parseClockComponent(hourPart, constant.MaxHour)
	if err != nil {
		return ClockTime{}, fmt.Errorf("%w: hour: %w", ErrInvalidTime, err)
	}

	minute, err := parseClockComponent(minutePart, constant.MaxMinute)
	if err != nil {
		return ClockTime{}, fmt.Errorf("%w: minute: %w", ErrInvalidTime, err)
	}

	return ClockTime{Hour: hour, Minute: minute}, nil
}

func parseClockComponent(s string, maxValue int) (int, error) {
	if len(s) > maxClockDigits {
		return 0, fmt.Errorf("invalid value %q", s)
	}

	value, err := parseDigits(s)
	if err != nil {
		return 0, err
	}

	if value > maxValue {
		return 0, fmt.Errorf("value %d out of bounds [0, %d]", value, maxValue)
	}

	return value, nil
}

// String renders the time as zero-padded HH:MM.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Before reports whether c is earlier in the day than other.
func (c ClockTime) Before(other ClockTime) bool {
	return c.Hour < other.Hour || (c.Hour == other.Hour && c.Minute < other.Minute)
}
