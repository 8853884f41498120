package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrCancelOrderPaymentCommandIsNotConstructed = errors.New(
	"CancelOrderPaymentCommand must be created via NewCancelOrderPaymentCommand constructor",
)

// CancelOrderPaymentCommand starts cancellation of a paid order the restaurant rejected.
type CancelOrderPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.OrderID
	failureMessages []string

	guard guard.ConstructorGuard
}

func NewCancelOrderPaymentCommand(orderID kernel.OrderID, failureMessages []string) (CancelOrderPaymentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CancelOrderPaymentCommand{}, errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}

	msgs := make([]string, len(failureMessages))
	copy(msgs, failureMessages)

	return CancelOrderPaymentCommand{
		orderID:         orderID,
		failureMessages: msgs,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderPaymentCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderPaymentCommandIsNotConstructed)
}

func (c CancelOrderPaymentCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c CancelOrderPaymentCommand) FailureMessages() []string {
	return c.failureMessages
}
