package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/LerianStudio/lib-minicron/minicron/cron"
)

// Line pairs a job with its predicted next run.
type Line struct {
	Job        cron.Job
	Prediction cron.Prediction
}

// String renders the line as "<HH>:<MM> <day> - <command>".
func (l Line) String() string {
	return fmt.Sprintf("%s:%s %s - %s", l.Prediction.Hour, l.Prediction.Minute, l.Prediction.Day, l.Job.Command)
}

// Write prints one rendered line per entry.
func Write(w io.Writer, lines []Line) error {
	buffered := bufio.NewWriter(w)

	for _, line := range lines {
		if _, err := buffered.WriteString(line.String() + "\n"); err != nil {
			return fmt.Errorf("write report line: %w", err)
		}
	}

	if err := buffered.Flush(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}

	return nil
}
