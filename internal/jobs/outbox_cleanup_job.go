package jobs

import (
	"context"
	"log/slog"

	"ordering/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type CleanupOutboxMessagesHandler interface {
	Handle(ctx context.Context, cmd commands.CleanupOutboxMessagesCommand) (int64, error)
}

// OutboxCleanupJob deletes sent outbox messages past their retention.
type OutboxCleanupJob struct {
	handler  CleanupOutboxMessagesHandler
	cmd      commands.CleanupOutboxMessagesCommand
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewOutboxCleanupJob(
	handler CleanupOutboxMessagesHandler,
	cmd commands.CleanupOutboxMessagesCommand,
	schedule string,
	logger *slog.Logger,
) *OutboxCleanupJob {
	jobLogger := logger.With("component", "outbox_cleanup_job")

	return &OutboxCleanupJob{
		handler:  handler,
		cmd:      cmd,
		schedule: schedule,
		cron:     newCron(jobLogger),
		logger:   jobLogger,
	}
}

func (j *OutboxCleanupJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox cleanup job started", "schedule", j.schedule)
	return nil
}

func (j *OutboxCleanupJob) RunOnce(ctx context.Context) {
	deleted, err := j.handler.Handle(ctx, j.cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox cleanup job failed", "error", err)
		return
	}

	if deleted > 0 {
		j.logger.InfoContext(ctx, "Sent outbox messages deleted", "count", deleted, "retention", j.cmd.Retention().String())
	}
}

func (j *OutboxCleanupJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox cleanup job stopped")
}
