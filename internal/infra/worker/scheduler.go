package worker

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// NewScheduler returns a stopped cron scheduler that runs job on schedule,
// evaluated in loc. A run still in progress causes the next tick to be
// skipped, and a panicking job is logged instead of crashing the process.
func NewScheduler(schedule string, loc *time.Location, job cron.Job, logger *slog.Logger) (*cron.Cron, error) {
	if loc == nil {
		loc = time.UTC
	}
	cl := cronLogger{logger: logger}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cl),
		cron.WithChain(cron.SkipIfStillRunning(cl), cron.Recover(cl)),
	)
	if _, err := c.AddJob(schedule, job); err != nil {
		return nil, fmt.Errorf("add cron job %q: %w", schedule, err)
	}
	return c, nil
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append(keysAndValues, slog.Any("error", err))...)
}
