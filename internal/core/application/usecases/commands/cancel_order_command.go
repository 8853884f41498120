package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand finishes cancellation after the payment was cancelled or failed.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.OrderID
	failureMessages []string

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID kernel.OrderID, failureMessages []string) (CancelOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CancelOrderCommand{}, errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}

	msgs := make([]string, len(failureMessages))
	copy(msgs, failureMessages)

	return CancelOrderCommand{
		orderID:         orderID,
		failureMessages: msgs,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c CancelOrderCommand) FailureMessages() []string {
	return c.failureMessages
}
