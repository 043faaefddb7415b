package constants

// Environment variable names read by minicron.Config.
const (
	EnvName            = "ENV_NAME"
	EnvLogLevel        = "LOG_LEVEL"
	EnvWorkers         = "MINICRON_WORKERS"
	EnvStrict          = "MINICRON_STRICT"
	EnvOTelLibraryName = "OTEL_LIBRARY_NAME"
)

// Defaults applied when the environment leaves a key unset.
const (
	DefaultEnvName         = "production"
	DefaultWorkers         = 4
	MaxWorkers             = 64
	DefaultOTelLibraryName = "github.com/LerianStudio/lib-minicron"
)
