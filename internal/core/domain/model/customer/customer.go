// Package customer models the ordering party. The order service only needs to
// know that a customer exists.
package customer

import (
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

type Customer struct {
	id kernel.CustomerID
}

func NewCustomer(id kernel.CustomerID) (*Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	return &Customer{id: id}, nil
}

func (c *Customer) ID() kernel.CustomerID {
	return c.id
}
