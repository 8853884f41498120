package order

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
)

// ItemSnapshot is the event view of one item.
type ItemSnapshot struct {
	ID        ItemID
	ProductID kernel.ProductID
	Quantity  int
	Price     kernel.Money
	SubTotal  kernel.Money
}

// Event is the immutable state of an order right after a transition. SagaID
// correlates all messages of one order workflow and equals the order id.
type Event struct {
	OrderID         kernel.OrderID
	TrackingID      TrackingID
	SagaID          kernel.UUID
	CustomerID      kernel.CustomerID
	RestaurantID    kernel.RestaurantID
	Price           kernel.Money
	Items           []ItemSnapshot
	Status          Status
	FailureMessages []string
	CreatedAt       time.Time
}

type (
	// CreatedEvent requests payment for a new order.
	CreatedEvent struct{ Event }
	// PaidEvent requests restaurant approval for a paid order.
	PaidEvent struct{ Event }
	// ApprovedEvent records the end of the happy path.
	ApprovedEvent struct{ Event }
	// CancelledEvent requests a payment reversal.
	CancelledEvent struct{ Event }
)

func NewCreatedEvent(o *Order, at time.Time) CreatedEvent {
	return CreatedEvent{snapshot(o, at)}
}

func NewPaidEvent(o *Order, at time.Time) PaidEvent {
	return PaidEvent{snapshot(o, at)}
}

func NewApprovedEvent(o *Order, at time.Time) ApprovedEvent {
	return ApprovedEvent{snapshot(o, at)}
}

func NewCancelledEvent(o *Order, at time.Time) CancelledEvent {
	return CancelledEvent{snapshot(o, at)}
}

func snapshot(o *Order, at time.Time) Event {
	items := make([]ItemSnapshot, 0, len(o.items))
	for _, item := range o.items {
		items = append(items, ItemSnapshot{
			ID:        item.id,
			ProductID: item.product.ID(),
			Quantity:  item.quantity,
			Price:     item.price,
			SubTotal:  item.subTotal,
		})
	}

	return Event{
		OrderID:         o.id,
		TrackingID:      o.trackingID,
		SagaID:          o.id.UUID,
		CustomerID:      o.customerID,
		RestaurantID:    o.restaurantID,
		Price:           o.price,
		Items:           items,
		Status:          o.status,
		FailureMessages: o.FailureMessages(),
		CreatedAt:       at.UTC(),
	}
}
