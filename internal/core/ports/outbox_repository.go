package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/outbox"
)

type OutboxRepository interface {
	Add(ctx context.Context, message *outbox.Message) error

	// GetPending locks up to limit unsent messages, oldest first. Rows locked by
	// another relay are skipped.
	GetPending(ctx context.Context, limit int) ([]*outbox.Message, error)

	Update(ctx context.Context, message *outbox.Message) error

	// DeleteSentBefore removes messages sent before t and returns how many were removed.
	DeleteSentBefore(ctx context.Context, t time.Time) (int64, error)
}
