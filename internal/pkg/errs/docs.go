// Package errs holds the error kinds shared by every layer of the order service.
//
// The package includes:
//   - ValueIsRequiredError: a mandatory value is missing
//   - ValueIsInvalidError: a value breaks a format or business rule
//   - ValueIsOutOfRangeError: a number lies outside [Min, Max]
//   - ObjectNotFoundError: a repository lookup found nothing
//   - VersionIsInvalidError: the order row changed between load and save
//   - DomainError: an order rule was broken
//
// Each kind pairs a sentinel (ErrValueIsRequired, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrObjectNotFound, ErrVersionIsInvalid, ErrDomain) with a
// struct carrying the details, and has a constructor with and without a cause.
// Callers match on the sentinel with errors.Is and read the details with
// errors.As:
//
//	err := handler.Handle(ctx, cmd)
//	var notFound *errs.ObjectNotFoundError
//	switch {
//	case errors.As(err, &notFound):
//	    // notFound.ParamName, notFound.ID
//	case errors.Is(err, errs.ErrVersionIsInvalid):
//	    // run the command again
//	case errors.Is(err, errs.ErrDomain):
//	    // report the rule to the client
//	}
//
// A DomainError unwraps to both ErrDomain and its Cause, so a rule broken because
// of a refused status change still matches order.ErrStatusTransitionIsNotAllowed.
//
// Example:
//
//	return errs.NewDomainErrorWithCause("order is not paid", order.ErrStatusTransitionIsNotAllowed)
package errs
