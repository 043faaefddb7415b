package minicron

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	constant "github.com/LerianStudio/lib-minicron/minicron/constants"
)

// ErrNotPointer is returned when SetConfigFromEnvVars is given a non-pointer.
var ErrNotPointer = errors.New("config must be a pointer to a struct")

// ErrInvalidConfig wraps configuration validation failures.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the runtime configuration of the minicron CLI.
type Config struct {
	EnvName         string `env:"ENV_NAME" validate:"oneof=production staging development local"`
	LogLevel        string `env:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`
	Workers         int64  `env:"MINICRON_WORKERS" validate:"gte=1"`
	Strict          bool   `env:"MINICRON_STRICT"`
	OTelLibraryName string `env:"OTEL_LIBRARY_NAME" validate:"required"`
}

// DefaultConfig returns the configuration used when the environment is empty.
func DefaultConfig() Config {
	return Config{
		EnvName:         constant.DefaultEnvName,
		Workers:         constant.DefaultWorkers,
		OTelLibraryName: constant.DefaultOTelLibraryName,
	}
}

// LoadConfig reads Config from the environment on top of DefaultConfig and
// validates it.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if err := SetConfigFromEnvVars(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the configuration bounds.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fe := validationErrors[0]

			return fmt.Errorf("%w: %s=%v fails %s %s", ErrInvalidConfig, fe.Field(), fe.Value(), fe.Tag(), fe.Param())
		}

		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if c.Workers > constant.MaxWorkers {
		return fmt.Errorf("%w: Workers=%d exceeds %d", ErrInvalidConfig, c.Workers, constant.MaxWorkers)
	}

	return nil
}

// GetenvOrDefault returns the trimmed value of key, or defaultValue when the
// variable is unset or blank.
func GetenvOrDefault(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}

	return value
}

// GetenvBoolOrDefault parses key as a bool, falling back on absence or error.
func GetenvBoolOrDefault(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return defaultValue
	}

	return value
}

// GetenvIntOrDefault parses key as an int64, falling back on absence or error.
func GetenvIntOrDefault(key string, defaultValue int64) int64 {
	value, err := strconv.ParseInt(strings.TrimSpace(os.Getenv(key)), 10, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

// SetConfigFromEnvVars fills the `env`-tagged string, bool and int64 fields
// of the struct pointed to by target. Fields whose variable is unset keep
// their current value.
func SetConfigFromEnvVars(target any) error {
	ptr := reflect.ValueOf(target)
	if ptr.Kind() != reflect.Pointer || ptr.IsNil() || ptr.Elem().Kind() != reflect.Struct {
		return ErrNotPointer
	}

	value := ptr.Elem()
	typ := value.Type()

	for i := 0; i < typ.NumField(); i++ {
		key, ok := typ.Field(i).Tag.Lookup("env")
		if !ok || key == "" {
			continue
		}

		field := value.Field(i)
		if !field.CanSet() {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(GetenvOrDefault(key, field.String()))
		case reflect.Bool:
			field.SetBool(GetenvBoolOrDefault(key, field.Bool()))
		case reflect.Int, reflect.Int32, reflect.Int64:
			field.SetInt(GetenvIntOrDefault(key, field.Int()))
		}
	}

	return nil
}

var (
	localEnvConfigOnce sync.Once
	localEnvConfig     *LocalEnvConfig
)

// LocalEnvConfig records what InitLocalEnvConfig found.
type LocalEnvConfig struct {
	EnvName     string
	Initialized bool
	Err         error
}

// InitLocalEnvConfig loads a .env file from the working directory when
// ENV_NAME is "local". It runs once per process and writes nothing, so
// callers decide where to report the result.
func InitLocalEnvConfig() *LocalEnvConfig {
	localEnvConfigOnce.Do(func() {
		localEnvConfig = &LocalEnvConfig{
			EnvName: GetenvOrDefault(constant.EnvName, constant.DefaultEnvName),
		}

		if localEnvConfig.EnvName == "local" {
			localEnvConfig.Err = godotenv.Load()
			localEnvConfig.Initialized = localEnvConfig.Err == nil
		}
	})

	return localEnvConfig
}

// LoadEnvFile loads variables from path without overriding ones already set.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %q: %w", path, err)
	}

	return nil
}
