package jobs

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

func newCron(logger *slog.Logger) *cron.Cron {
	cronLogger := cronLogger{logger: logger}

	return cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
}

// cronLogger adapts slog to cron.Logger. Info output of cron is per tick, so it
// goes to debug.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
