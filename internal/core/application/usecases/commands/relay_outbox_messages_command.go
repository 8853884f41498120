package commands

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrRelayOutboxMessagesCommandIsNotConstructed = errors.New(
		"RelayOutboxMessagesCommand must be created via NewRelayOutboxMessagesCommand constructor",
	)
	ErrCleanupOutboxMessagesCommandIsNotConstructed = errors.New(
		"CleanupOutboxMessagesCommand must be created via NewCleanupOutboxMessagesCommand constructor",
	)
)

const maxRelayBatchSize = 1000

// RelayOutboxMessagesCommand publishes up to BatchSize pending outbox messages.
type RelayOutboxMessagesCommand struct {
	batchSize int
	guard     guard.ConstructorGuard
}

func NewRelayOutboxMessagesCommand(batchSize int) (RelayOutboxMessagesCommand, error) {
	if batchSize < 1 || batchSize > maxRelayBatchSize {
		return RelayOutboxMessagesCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, maxRelayBatchSize)
	}
	return RelayOutboxMessagesCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c RelayOutboxMessagesCommand) Validate() error {
	return c.guard.Validate(ErrRelayOutboxMessagesCommandIsNotConstructed)
}

func (c RelayOutboxMessagesCommand) BatchSize() int {
	return c.batchSize
}

// CleanupOutboxMessagesCommand removes messages sent longer than Retention ago.
type CleanupOutboxMessagesCommand struct {
	retention time.Duration
	guard     guard.ConstructorGuard
}

func NewCleanupOutboxMessagesCommand(retention time.Duration) (CleanupOutboxMessagesCommand, error) {
	if retention <= 0 {
		return CleanupOutboxMessagesCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"retention", fmt.Errorf("%s is not positive", retention))
	}
	return CleanupOutboxMessagesCommand{retention: retention, guard: guard.NewConstructorGuard()}, nil
}

func (c CleanupOutboxMessagesCommand) Validate() error {
	return c.guard.Validate(ErrCleanupOutboxMessagesCommandIsNotConstructed)
}

func (c CleanupOutboxMessagesCommand) Retention() time.Duration {
	return c.retention
}
