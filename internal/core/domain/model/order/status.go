package order

import (
	"errors"
	"fmt"

	"ordering/internal/pkg/errs"
)

// ErrStatusTransitionIsNotAllowed is wrapped by every rejected transition, so callers
// can tell an out-of-order or replayed signal from other domain failures.
var ErrStatusTransitionIsNotAllowed = errors.New("status transition is not allowed")

// Status is the lifecycle state of an order.
//
//	Pending ──> Paid ──> Approved
//	   │          │
//	   │          └──> Cancelling ──> Cancelled
//	   └─────────────────────────────────^
//
// Approved and Cancelled are terminal.
type Status int

const (
	// Unknown is the zero value and is never valid.
	Unknown Status = iota
	Pending
	Paid
	Approved
	Cancelling
	Cancelled
)

var statusNames = map[Status]string{
	Pending:    "PENDING",
	Paid:       "PAID",
	Approved:   "APPROVED",
	Cancelling: "CANCELLING",
	Cancelled:  "CANCELLED",
}

// ParseStatus maps a persisted or wire name back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition is defined.
func (s Status) IsTerminal() bool {
	return s == Approved || s == Cancelled
}

func (s Status) Pay() (Status, error) {
	if s != Pending {
		return Unknown, transitionError("pay", s)
	}
	return Paid, nil
}

func (s Status) Approve() (Status, error) {
	if s != Paid {
		return Unknown, transitionError("approve", s)
	}
	return Approved, nil
}

func (s Status) InitCancel() (Status, error) {
	if s != Paid {
		return Unknown, transitionError("initCancel", s)
	}
	return Cancelling, nil
}

func (s Status) Cancel() (Status, error) {
	if s != Cancelling && s != Pending {
		return Unknown, transitionError("cancel", s)
	}
	return Cancelled, nil
}

func transitionError(operation string, from Status) error {
	return errs.NewDomainErrorWithCause(
		fmt.Sprintf("order is not in correct state for %s operation", operation),
		fmt.Errorf("%w: %s from %s", ErrStatusTransitionIsNotAllowed, operation, from),
	)
}
