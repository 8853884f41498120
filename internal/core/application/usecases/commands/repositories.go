// Package commands contains the use cases that change order state. Every handler
// runs inside one unit of work: Begin, deferred Rollback, Commit.
package commands

import (
	"context"

	"ordering/internal/core/ports"
)

// Unit of work views. Each handler depends on the narrowest one it needs.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	RestaurantRepoFactory interface {
		RestaurantRepository() ports.RestaurantRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	PaymentRequestPublisherFactory interface {
		OrderCreatedPaymentRequestMessagePublisher() ports.OrderCreatedPaymentRequestMessagePublisher
	}

	PaymentCancelPublisherFactory interface {
		OrderCancelledPaymentRequestMessagePublisher() ports.OrderCancelledPaymentRequestMessagePublisher
	}

	RestaurantRequestPublisherFactory interface {
		OrderPaidRestaurantRequestMessagePublisher() ports.OrderPaidRestaurantRequestMessagePublisher
	}

	// CreateOrderUoW reads customers and restaurants, stores the order and queues
	// the payment request.
	CreateOrderUoW interface {
		TxManager
		CustomerRepoFactory
		RestaurantRepoFactory
		OrderRepoFactory
		PaymentRequestPublisherFactory
	}

	CreateOrderUoWFactory interface {
		Create() CreateOrderUoW
	}

	// OrderUoW changes an order without publishing anything.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	PayOrderUoW interface {
		TxManager
		OrderRepoFactory
		RestaurantRequestPublisherFactory
	}

	PayOrderUoWFactory interface {
		Create() PayOrderUoW
	}

	CancelOrderPaymentUoW interface {
		TxManager
		OrderRepoFactory
		PaymentCancelPublisherFactory
	}

	CancelOrderPaymentUoWFactory interface {
		Create() CancelOrderPaymentUoW
	}

	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
