package cron

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"

	constant "github.com/LerianStudio/lib-minicron/minicron/constants"
)

// ErrInvalidJob is returned when a schedule line or Job fails validation.
var ErrInvalidJob = errors.New("invalid cron job")

// ErrValidatorInit is returned when the job validator cannot be built.
var ErrValidatorInit = errors.New("cron validator initialization failed")

// Job is one parsed schedule entry. Minute and Hour keep the token text as
// written ("00" stays "00").
type Job struct {
	Command string `validate:"required"`
	Minute  string `validate:"cron_minute"`
	Hour    string `validate:"cron_hour"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
	errValidate  error
)

func initValidator() (*validator.Validate, error) {
	vld := validator.New(validator.WithRequiredStructEnabled())

	if err := vld.RegisterValidation("cron_minute", func(fl validator.FieldLevel) bool {
		_, err := parseField(fl.Field().String(), constant.MaxMinute)
		return err == nil
	}); err != nil {
		return nil, fmt.Errorf("%w: failed to register 'cron_minute': %w", ErrValidatorInit, err)
	}

	if err := vld.RegisterValidation("cron_hour", func(fl validator.FieldLevel) bool {
		_, err := parseField(fl.Field().String(), constant.MaxHour)
		return err == nil
	}); err != nil {
		return nil, fmt.Errorf("%w: failed to register 'cron_hour': %w", ErrValidatorInit, err)
	}

	return vld, nil
}

func getValidator() (*validator.Validate, error) {
	validateOnce.Do(func() {
		validate, errValidate = initValidator()
	})

	return validate, errValidate
}

// ValidateJob reports why job is not a valid schedule entry. The returned
// error wraps ErrInvalidJob and names the first failing field.
func ValidateJob(job Job) error {
	vld, err := getValidator()
	if err != nil {
		return err
	}

	if err := vld.Struct(job); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			return formatFieldError(validationErrors[0])
		}

		return fmt.Errorf("%w: %w", ErrInvalidJob, err)
	}

	return nil
}

// IsValidCron reports whether job has a non-empty command, a minute that is
// "*" or in [0,59], and an hour that is "*" or in [0,23].
func IsValidCron(job Job) bool {
	return ValidateJob(job) == nil
}

func formatFieldError(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", ErrInvalidJob, fieldName(fe.Field()))
	case "cron_minute":
		return fmt.Errorf("%w: minute %q must be %s or an integer in [%d, %d]",
			ErrInvalidJob, fe.Value(), constant.Wildcard, constant.MinMinute, constant.MaxMinute)
	case "cron_hour":
		return fmt.Errorf("%w: hour %q must be %s or an integer in [%d, %d]",
			ErrInvalidJob, fe.Value(), constant.Wildcard, constant.MinHour, constant.MaxHour)
	default:
		return fmt.Errorf("%w: %s failed %s", ErrInvalidJob, fieldName(fe.Field()), fe.Tag())
	}
}

func fieldName(field string) string {
	switch field {
	case "Command":
		return "command"
	case "Minute":
		return "minute"
	case "Hour":
		return "hour"
	default:
		return field
	}
}

// parseField parses a single field value. It returns -1 for the wildcard.
// Only plain decimal digits are accepted: "12abc", "+5", "-1" and "" fail.
func parseField(field string, maxValue int) (int, error) {
	if field == constant.Wildcard {
		return -1, nil
	}

	value, err := parseDigits(field)
	if err != nil {
		return 0, err
	}

	if value > maxValue {
		return 0, fmt.Errorf("value %d out of bounds [0, %d]", value, maxValue)
	}

	return value, nil
}

// parseDigits is a whole-string decimal parse. strconv.Atoi alone would
// accept a sign.
func parseDigits(s string) (int, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("invalid value %q", s)
		}
	}

	return strconv.Atoi(s)
}

// ExpandField returns the ascending candidate values of a field: every value
// in [0, maxValue] for the wildcard, otherwise the single parsed value.
func ExpandField(field string, maxValue int) ([]int, error) {
	value, err := parseField(field, maxValue)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJob, err)
	}

	if value >= 0 {
		return []int{value}, nil
	}

	values := make([]int, maxValue+1)
	for i := range values {
		values[i] = i
	}

	return values, nil
}
