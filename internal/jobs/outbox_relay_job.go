package jobs

import (
	"context"
	"log/slog"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

type RelayOutboxMessagesHandler interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxMessagesCommand) (commands.RelayOutboxMessagesResult, error)
}

// OutboxRelayJob publishes pending outbox messages on a schedule.
type OutboxRelayJob struct {
	handler  RelayOutboxMessagesHandler
	cmd      commands.RelayOutboxMessagesCommand
	schedule string
	cron     *cron.Cron
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewOutboxRelayJob runs the relay on schedule, a six-field cron expression.
// A run still in progress makes the next tick skip.
func NewOutboxRelayJob(
	handler RelayOutboxMessagesHandler,
	cmd commands.RelayOutboxMessagesCommand,
	schedule string,
	m *metrics.Metrics,
	logger *slog.Logger,
) *OutboxRelayJob {
	jobLogger := logger.With("component", "outbox_relay_job")

	return &OutboxRelayJob{
		handler:  handler,
		cmd:      cmd,
		schedule: schedule,
		cron:     newCron(jobLogger),
		metrics:  m,
		logger:   jobLogger,
	}
}

func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// RunOnce relays one batch.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) {
	result, err := j.handler.Handle(ctx, j.cmd)
	j.metrics.ObserveRelay(result.Published, result.Failed, result.Deferred)

	if err != nil {
		j.metrics.OutboxRelayErrors.Inc()
		j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
		return
	}

	if result.Failed > 0 {
		j.logger.WarnContext(ctx, "Outbox messages left pending",
			"published", result.Published,
			"failed", result.Failed,
			"deferred", result.Deferred,
		)
	}
}

// Stop waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
