// Package ports defines the contracts between the ordering core and its adapters:
// repositories, the unit of work, event publishers, inbound listeners and the
// message bus.
package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates together with their items.
type OrderRepository interface {
	// Add inserts a new, initialized order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update saves changes to an order loaded in the same unit of work. A concurrent
	// change since the load yields errs.ErrVersionIsInvalid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order by id. A miss yields errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// GetByTrackingID loads an order by its customer-facing tracking id.
	GetByTrackingID(ctx context.Context, trackingID order.TrackingID) (*order.Order, error)
}
