package ports

import (
	"context"

	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"
)

type CustomerRepository interface {
	// Get returns errs.ErrObjectNotFound for unknown customers.
	Get(ctx context.Context, id kernel.CustomerID) (*customer.Customer, error)
}
