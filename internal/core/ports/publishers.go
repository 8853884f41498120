package ports

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// OrderCreatedPaymentRequestMessagePublisher asks the payment service to charge
// the customer for a new order.
type OrderCreatedPaymentRequestMessagePublisher interface {
	Publish(ctx context.Context, event order.CreatedEvent) error
}

// OrderCancelledPaymentRequestMessagePublisher asks the payment service to revert
// the payment of an order rejected by the restaurant.
type OrderCancelledPaymentRequestMessagePublisher interface {
	Publish(ctx context.Context, event order.CancelledEvent) error
}

// OrderPaidRestaurantRequestMessagePublisher asks the restaurant to approve a
// paid order.
type OrderPaidRestaurantRequestMessagePublisher interface {
	Publish(ctx context.Context, event order.PaidEvent) error
}

// MessageBus delivers serialized messages to a broker topic. A nil error means the
// broker acknowledged the message.
type MessageBus interface {
	Publish(ctx context.Context, topic, key string, payload []byte) error
}
