package commands

import (
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// TransitionRejectedError reports a transition the order refused, together with the
// status the order was in. Listeners use Status to recognise replayed messages.
type TransitionRejectedError struct {
	OrderID kernel.OrderID
	Status  order.Status
	Err     error
}

func (e *TransitionRejectedError) Error() string {
	return fmt.Sprintf("order %s in status %s: %v", e.OrderID, e.Status, e.Err)
}

func (e *TransitionRejectedError) Unwrap() error {
	return e.Err
}

func rejected(o *order.Order, err error) error {
	return &TransitionRejectedError{OrderID: o.ID(), Status: o.Status(), Err: err}
}
