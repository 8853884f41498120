package commands

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/ports"
)

type RelayOutboxMessagesResult struct {
	Published int
	Failed    int
	// Deferred counts messages held back because an earlier message with the same
	// key failed in this batch.
	Deferred int
}

// RelayOutboxMessagesCommandHandler moves committed events from the outbox to the
// message bus. Messages that fail stay pending and are retried on the next run,
// so delivery is at least once.
type RelayOutboxMessagesCommandHandler struct {
	uowFactory OutboxUoWFactory
	bus        ports.MessageBus
	now        func() time.Time
	logger     *slog.Logger
}

func NewRelayOutboxMessagesCommandHandler(
	uowFactory OutboxUoWFactory,
	bus ports.MessageBus,
	now func() time.Time,
	logger *slog.Logger,
) RelayOutboxMessagesCommandHandler {
	return RelayOutboxMessagesCommandHandler{
		uowFactory: uowFactory,
		bus:        bus,
		now:        now,
		logger:     logger.With("component", "RelayOutboxMessagesCommandHandler"),
	}
}

func (h RelayOutboxMessagesCommandHandler) Handle(
	ctx context.Context,
	cmd RelayOutboxMessagesCommand,
) (RelayOutboxMessagesResult, error) {
	var result RelayOutboxMessagesResult
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return result, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outboxRepo := uow.OutboxRepository()
	messages, err := outboxRepo.GetPending(ctx, cmd.BatchSize())
	if err != nil {
		return result, err
	}
	if len(messages) == 0 {
		return result, nil
	}

	failedKeys := make(map[string]struct{})
	for _, m := range messages {
		if _, blocked := failedKeys[m.Key()]; blocked && m.Key() != "" {
			result.Deferred++
			continue
		}

		if pubErr := h.bus.Publish(ctx, m.Topic(), m.Key(), m.Payload()); pubErr != nil {
			h.logger.WarnContext(ctx, "failed to publish outbox message",
				"messageId", m.ID().String(),
				"topic", m.Topic(),
				"attempt", m.Attempts()+1,
				"error", pubErr,
			)
			m.MarkFailed(pubErr)
			failedKeys[m.Key()] = struct{}{}
			result.Failed++
		} else {
			m.MarkSent(h.now())
			result.Published++
		}

		if err = outboxRepo.Update(ctx, m); err != nil {
			return result, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return result, err
	}

	return result, nil
}
