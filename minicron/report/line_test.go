//go:build unit

package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/LerianStudio/lib-minicron/minicron/cron"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestLineString(t *testing.T) {
	t.Parallel()

	line := Line{
		Job:        cron.Job{Command: "/bin/run_me_hourly", Minute: "45", Hour: "*"},
		Prediction: cron.Prediction{Day: cron.DayTomorrow, Hour: "00", Minute: "45"},
	}

	assert.Equal(t, "00:45 tomorrow - /bin/run_me_hourly", line.String())
}

func TestWrite(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := Write(&buf, []Line{
		{Job: cron.Job{Command: "/bin/a"}, Prediction: cron.Prediction{Day: cron.DayToday, Hour: "16", Minute: "45"}},
		{Job: cron.Job{Command: "/bin/b"}, Prediction: cron.Prediction{Day: cron.DayTomorrow, Hour: "01", Minute: "30"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "16:45 today - /bin/a\n01:30 tomorrow - /bin/b\n", buf.String())
}

func TestWrite_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, Write(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestWrite_PropagatesWriterError(t *testing.T) {
	t.Parallel()

	err := Write(failingWriter{}, []Line{{Job: cron.Job{Command: "/bin/a"}}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
