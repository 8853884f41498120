// Package order implements the Order aggregate of the food ordering workflow.
//
// An order is created transient from a client request, confirmed against the
// restaurant catalog, initialized with identifiers, validated and then driven
// through its lifecycle by asynchronous payment and restaurant responses:
//
//	PENDING -> PAID -> APPROVED
//	PENDING -> CANCELLED
//	PAID -> CANCELLING -> CANCELLED
//
// Every rule violation is an errs.DomainError. Rejected transitions also wrap
// ErrStatusTransitionIsNotAllowed so that message listeners can recognise replays.
//
// The package also defines the events emitted after each transition and the
// IdentityGenerator used by Initialize.
package order
