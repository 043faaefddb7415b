// minicron prints the next run of every job in a cron-like schedule.
//
// The schedule is read from stdin, one "<minute> <hour> <command>" line per
// job, and the current time is the single HH:MM argument:
//
//	minicron 16:10 < config
//
// Each job produces "HH:MM today|tomorrow - command" on stdout. Logs go to
// stderr.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/LerianStudio/lib-minicron/minicron"
	constant "github.com/LerianStudio/lib-minicron/minicron/constants"
	"github.com/LerianStudio/lib-minicron/minicron/cron"
	"github.com/LerianStudio/lib-minicron/minicron/log"
	"github.com/LerianStudio/lib-minicron/minicron/report"
	"github.com/LerianStudio/lib-minicron/minicron/runtime"
	"github.com/LerianStudio/lib-minicron/minicron/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)

	if err := app.run(context.Background(), os.Args[1:]); err != nil {
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			if msg := err.Error(); msg != "" {
				fmt.Fprintf(os.Stderr, "error: %s\n", msg)
			}

			os.Exit(coder.ExitCode())
		}

		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// exitError carries the process exit code for a failed run.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return ""
	}

	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func (e *exitError) ExitCode() int { return e.code }

func usageError(format string, args ...any) error {
	return &exitError{code: 2, err: fmt.Errorf(format, args...)}
}

func failure(err error) error {
	return &exitError{code: 1, err: err}
}

type options struct {
	workers  int
	logLevel string
	strict   bool
	envFile  string
	help     bool
	version  bool
}

type app struct {
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	newLogger func(minicron.Config) (log.Logger, error)
	tracer    trace.Tracer
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:     stdin,
		stdout:    stdout,
		stderr:    stderr,
		newLogger: newZapLogger,
		tracer:    otel.Tracer(constant.TracerName),
	}
}

func newZapLogger(cfg minicron.Config) (log.Logger, error) {
	logger, err := zap.New(zap.Config{
		Environment:     zap.Environment(cfg.EnvName),
		Level:           cfg.LogLevel,
		OTelLibraryName: cfg.OTelLibraryName,
	})
	if err != nil {
		return nil, err
	}

	return logger, nil
}

func (a *app) run(ctx context.Context, args []string) error {
	var opts options

	flagSet := pflag.NewFlagSet("minicron", pflag.ContinueOnError)
	flagSet.SetOutput(a.stderr)
	flagSet.IntVar(&opts.workers, "workers", constant.DefaultWorkers,
		fmt.Sprintf("jobs predicted concurrently, 1 to %d (env %s)", constant.MaxWorkers, constant.EnvWorkers))
	flagSet.StringVar(&opts.logLevel, "log-level", "",
		fmt.Sprintf("debug, info, warn or error (env %s)", constant.EnvLogLevel))
	flagSet.BoolVar(&opts.strict, "strict", false,
		fmt.Sprintf("fail when any schedule line is invalid (env %s)", constant.EnvStrict))
	flagSet.StringVar(&opts.envFile, "env-file", "", "load environment variables from this file first")
	flagSet.BoolVarP(&opts.help, "help", "h", false, "show help")
	flagSet.BoolVar(&opts.version, "version", false, "print the version and exit")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			a.printHelp(flagSet)

			return nil
		}

		return usageError("%w", err)
	}

	if opts.help {
		a.printHelp(flagSet)

		return nil
	}

	if opts.version {
		fmt.Fprintf(a.stdout, "minicron %s\n", version)

		return nil
	}

	input, err := io.ReadAll(a.stdin)
	if err != nil {
		return failure(fmt.Errorf("read schedule: %w", err))
	}

	// An empty schedule has nothing to predict, with or without a time.
	if strings.TrimSpace(string(input)) == "" {
		return nil
	}

	positional := flagSet.Args()
	if len(positional) != 1 {
		return usageError("expected exactly one HH:MM argument, got %d", len(positional))
	}

	cfg, local, err := a.loadConfig(flagSet, opts)
	if err != nil {
		return failure(err)
	}

	runtime.SetProductionMode(cfg.EnvName == constant.DefaultEnvName)

	logger, err := a.newLogger(cfg)
	if err != nil {
		return failure(err)
	}

	defer func() { _ = logger.Sync(context.Background()) }()

	ctx = minicron.ContextWithLogger(ctx, logger)

	logger.Log(ctx, log.LevelDebug, "starting",
		log.String("version", version),
		log.String("env_name", local.EnvName),
	)

	if local.Err != nil {
		logger.Log(ctx, log.LevelWarn, "local .env not loaded", log.Err(local.Err))
	}

	return a.predict(ctx, logger, cfg, positional[0], string(input))
}

// loadConfig layers the env file, a local .env, the environment and then
// explicit flags.
func (a *app) loadConfig(flagSet *pflag.FlagSet, opts options) (minicron.Config, *minicron.LocalEnvConfig, error) {
	if opts.envFile != "" {
		if err := minicron.LoadEnvFile(opts.envFile); err != nil {
			return minicron.Config{}, nil, err
		}
	}

	local := minicron.InitLocalEnvConfig()

	cfg, err := minicron.LoadConfig()
	if err != nil {
		return minicron.Config{}, nil, err
	}

	if flagSet.Changed("workers") {
		cfg.Workers = int64(opts.workers)
	}

	if flagSet.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}

	if flagSet.Changed("strict") {
		cfg.Strict = opts.strict
	}

	if err := cfg.Validate(); err != nil {
		return minicron.Config{}, nil, err
	}

	return cfg, local, nil
}

func (a *app) predict(ctx context.Context, logger log.Logger, cfg minicron.Config, currentTime, input string) error {
	ctx, span := a.tracer.Start(ctx, constant.SpanRun)
	defer span.End()

	jobs, rejected := cron.ParseLines(input)
	span.SetAttributes(attribute.Int(constant.AttrRejected, len(rejected)))

	for _, r := range rejected {
		span.AddEvent(constant.EventJobRejected, trace.WithAttributes(attribute.Int(constant.AttrLine, r.Line)))
		logger.Log(ctx, log.LevelWarn, "dropping schedule line",
			log.Int("line", r.Line),
			log.String("text", r.Text),
			log.Err(r.Err),
		)
	}

	if cfg.Strict && len(rejected) > 0 {
		for _, r := range rejected {
			fmt.Fprintf(a.stderr, "line %d: %v\n", r.Line, r.Err)
		}

		span.SetStatus(codes.Error, "invalid schedule")

		return failure(fmt.Errorf("%d invalid schedule line(s)", len(rejected)))
	}

	predictor := report.NewPredictor(
		report.WithLogger(logger),
		report.WithTracer(a.tracer),
		report.WithWorkers(int(cfg.Workers)),
	)

	lines, err := predictor.Predict(ctx, currentTime, jobs)
	if err != nil {
		span.SetStatus(codes.Error, "predict")

		return failure(err)
	}

	if err := report.Write(a.stdout, lines); err != nil {
		return failure(fmt.Errorf("write report: %w", err))
	}

	return nil
}

func (a *app) printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprint(a.stderr, `minicron prints when each job of a cron-like schedule runs next.

Usage:
  minicron [flags] HH:MM < schedule

Each schedule line is "<minute> <hour> <command>", where minute and hour are
an integer or "*". Invalid lines are skipped unless --strict is set.

Examples:
  # Next runs after 16:10
  minicron 16:10 < config

  # Fail on any malformed line
  minicron --strict 09:00 < config

Flags:
`)
	flagSet.PrintDefaults()
}
