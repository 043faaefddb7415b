package constants

// Schedule field grammar.
const (
	// Wildcard matches every value of a field.
	Wildcard = "*"
	// LineFieldCount is the number of tokens read from a schedule line.
	LineFieldCount = 3

	MinMinute = 0
	MaxMinute = 59
	MinHour   = 0
	MaxHour   = 23
)

// Day labels rendered in predictions.
const (
	DayToday    = "today"
	DayTomorrow = "tomorrow"
)
