package ports

import (
	"context"
)

// UnitOfWorkFactory creates one UnitOfWork per command or message.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories and publishers
// obtained after Begin share its transaction, so an order change and the events it
// produced are committed or rolled back together.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	CustomerRepository() CustomerRepository
	RestaurantRepository() RestaurantRepository
	OutboxRepository() OutboxRepository

	OrderCreatedPaymentRequestMessagePublisher() OrderCreatedPaymentRequestMessagePublisher
	OrderCancelledPaymentRequestMessagePublisher() OrderCancelledPaymentRequestMessagePublisher
	OrderPaidRestaurantRequestMessagePublisher() OrderPaidRestaurantRequestMessagePublisher
}
