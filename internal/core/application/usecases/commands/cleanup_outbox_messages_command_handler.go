package commands

import (
	"context"
	"log/slog"
	"time"
)

type CleanupOutboxMessagesCommandHandler struct {
	uowFactory OutboxUoWFactory
	now        func() time.Time
	logger     *slog.Logger
}

func NewCleanupOutboxMessagesCommandHandler(
	uowFactory OutboxUoWFactory,
	now func() time.Time,
	logger *slog.Logger,
) CleanupOutboxMessagesCommandHandler {
	return CleanupOutboxMessagesCommandHandler{
		uowFactory: uowFactory,
		now:        now,
		logger:     logger.With("component", "CleanupOutboxMessagesCommandHandler"),
	}
}

// Handle returns the number of deleted messages.
func (h CleanupOutboxMessagesCommandHandler) Handle(ctx context.Context, cmd CleanupOutboxMessagesCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deleted, err := uow.OutboxRepository().DeleteSentBefore(ctx, h.now().Add(-cmd.Retention()))
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	if deleted > 0 {
		h.logger.InfoContext(ctx, "outbox messages deleted", "count", deleted)
	}
	return deleted, nil
}
