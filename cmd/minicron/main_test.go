//go:build unit

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/LerianStudio/lib-minicron/minicron"
	"github.com/LerianStudio/lib-minicron/minicron/cron"
	"github.com/LerianStudio/lib-minicron/minicron/log"
	"github.com/LerianStudio/lib-minicron/minicron/zap"
)

const sampleSchedule = `30 1 /bin/run_me_daily
45 * /bin/run_me_hourly
* * /bin/run_me_every_minute
* 19 /bin/run_me_sixty_times
`

type harness struct {
	app    *app
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	logs   *observer.ObservedLogs
}

// newHarness clears the environment keys the CLI reads so host settings do
// not leak into a run.
func newHarness(t *testing.T, stdin string) *harness {
	t.Helper()

	for _, key := range []string{"ENV_NAME", "LOG_LEVEL", "MINICRON_WORKERS", "MINICRON_STRICT", "OTEL_LIBRARY_NAME", "VERSION"} {
		t.Setenv(key, "")
	}

	t.Setenv("ENV_NAME", "development")

	core, logs := observer.New(zapcore.DebugLevel)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	a := newApp(strings.NewReader(stdin), stdout, stderr)
	a.newLogger = func(minicron.Config) (log.Logger, error) {
		return zap.NewWithCore(core), nil
	}

	return &harness{app: a, stdout: stdout, stderr: stderr, logs: logs}
}

func exitCode(t *testing.T, err error) int {
	t.Helper()

	var coder interface{ ExitCode() int }
	require.ErrorAs(t, err, &coder)

	return coder.ExitCode()
}

func TestRun_PrintsNextRuns(t *testing.T) {
	h := newHarness(t, sampleSchedule)

	require.NoError(t, h.app.run(context.Background(), []string{"16:10"}))

	assert.Equal(t, `01:30 tomorrow - /bin/run_me_daily
16:45 today - /bin/run_me_hourly
16:10 today - /bin/run_me_every_minute
19:00 today - /bin/run_me_sixty_times
`, h.stdout.String())
}

func TestRun_EmptySchedulePrintsNothing(t *testing.T) {
	h := newHarness(t, "  \n\n")

	require.NoError(t, h.app.run(context.Background(), []string{"10:00"}))
	assert.Empty(t, h.stdout.String())
}

func TestRun_EmptyScheduleIgnoresMissingTime(t *testing.T) {
	h := newHarness(t, "")

	require.NoError(t, h.app.run(context.Background(), nil))
	assert.Empty(t, h.stdout.String())
	assert.Empty(t, h.stderr.String())
}

func TestRun_MissingTimeIsUsageError(t *testing.T) {
	h := newHarness(t, sampleSchedule)

	err := h.app.run(context.Background(), nil)

	assert.Equal(t, 2, exitCode(t, err))
	assert.Empty(t, h.stdout.String())
}

func TestRun_ExtraArgumentIsUsageError(t *testing.T) {
	h := newHarness(t, sampleSchedule)

	err := h.app.run(context.Background(), []string{"10:00", "11:00"})

	assert.Equal(t, 2, exitCode(t, err))
}

func TestRun_UnknownFlagIsUsageError(t *testing.T) {
	h := newHarness(t, sampleSchedule)

	err := h.app.run(context.Background(), []string{"--frobnicate", "10:00"})

	assert.Equal(t, 2, exitCode(t, err))
}

func TestRun_MalformedTimeFails(t *testing.T) {
	for _, currentTime := range []string{"25:00", "12:60", "noon", "12"} {
		t.Run(currentTime, func(t *testing.T) {
			h := newHarness(t, sampleSchedule)

			err := h.app.run(context.Background(), []string{currentTime})

			assert.Equal(t, 1, exitCode(t, err))
			assert.ErrorIs(t, err, cron.ErrInvalidTime)
			assert.Empty(t, h.stdout.String())
		})
	}
}

func TestRun_DropsInvalidLines(t *testing.T) {
	h := newHarness(t, "30 1 /bin/ok\n75 1 /bin/bad\nnot a line at all\n")

	require.NoError(t, h.app.run(context.Background(), []string{"00:00"}))

	assert.Equal(t, "01:30 today - /bin/ok\n", h.stdout.String())

	dropped := h.logs.FilterMessage("dropping schedule line").All()
	require.Len(t, dropped, 2)
	assert.Equal(t, int64(2), dropped[0].ContextMap()["line"])
	assert.Equal(t, int64(3), dropped[1].ContextMap()["line"])
}

func TestRun_StrictRejectsInvalidLines(t *testing.T) {
	h := newHarness(t, "30 1 /bin/ok\n75 1 /bin/bad\n* 24 /bin/worse\n")

	err := h.app.run(context.Background(), []string{"--strict", "00:00"})

	assert.Equal(t, 1, exitCode(t, err))
	assert.Empty(t, h.stdout.String())
	assert.Contains(t, h.stderr.String(), "line 2:")
	assert.Contains(t, h.stderr.String(), "line 3:")
}

func TestRun_StrictFromEnvironment(t *testing.T) {
	h := newHarness(t, "75 1 /bin/bad\n")
	t.Setenv("MINICRON_STRICT", "true")

	err := h.app.run(context.Background(), []string{"00:00"})

	assert.Equal(t, 1, exitCode(t, err))
}

func TestRun_FlagOverridesEnvironment(t *testing.T) {
	h := newHarness(t, "75 1 /bin/bad\n30 1 /bin/ok\n")
	t.Setenv("MINICRON_STRICT", "true")

	require.NoError(t, h.app.run(context.Background(), []string{"--strict=false", "00:00"}))
	assert.Equal(t, "01:30 today - /bin/ok\n", h.stdout.String())
}

func TestRun_RejectsOutOfRangeWorkers(t *testing.T) {
	h := newHarness(t, sampleSchedule)

	err := h.app.run(context.Background(), []string{"--workers", "0", "10:00"})

	assert.Equal(t, 1, exitCode(t, err))
	assert.ErrorIs(t, err, minicron.ErrInvalidConfig)
}

func TestRun_MissingEnvFileFails(t *testing.T) {
	h := newHarness(t, sampleSchedule)

	missing := filepath.Join(t.TempDir(), "missing.env")
	err := h.app.run(context.Background(), []string{"--env-file", missing, "10:00"})

	assert.Equal(t, 1, exitCode(t, err))
}

func TestRun_VersionReportsBuildStamp(t *testing.T) {
	h := newHarness(t, "")
	t.Setenv("VERSION", "9.9.9")

	require.NoError(t, h.app.run(context.Background(), []string{"--version"}))
	assert.Equal(t, "minicron "+version+"\n", h.stdout.String())
}

func TestRun_LocalEnvOutcomeStaysOffStdout(t *testing.T) {
	h := newHarness(t, sampleSchedule)

	require.NoError(t, h.app.run(context.Background(), []string{"16:10"}))

	assert.NotContains(t, h.stdout.String(), "ENVIRONMENT NAME")
	assert.NotContains(t, h.stdout.String(), "VERSION")

	starting := h.logs.FilterMessage("starting").All()
	require.Len(t, starting, 1)
	assert.Equal(t, version, starting[0].ContextMap()["version"])
}

func TestRun_Help(t *testing.T) {
	h := newHarness(t, "")

	require.NoError(t, h.app.run(context.Background(), []string{"--help"}))
	assert.Contains(t, h.stderr.String(), "minicron [flags] HH:MM < schedule")
	assert.Contains(t, h.stderr.String(), "--workers")
	assert.Empty(t, h.stdout.String())
}
