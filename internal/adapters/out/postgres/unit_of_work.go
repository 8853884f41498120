// Package postgres implements the unit of work over GORM. Repositories and outbox
// publishers handed out after Begin share the transaction, so an order change and
// the messages it produced are committed together.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//	if err := uow.OrderCreatedPaymentRequestMessagePublisher().Publish(ctx, event); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// A unit of work is not safe for concurrent use; create one per command.
package postgres

import (
	"context"

	"ordering/internal/adapters/messaging"
	"ordering/internal/adapters/out/postgres/customerrepo"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/outboxrepo"
	"ordering/internal/adapters/out/postgres/restaurantrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

type GormUnitOfWorkFactory struct {
	db     *gorm.DB
	topics messaging.Topics
}

func NewGormUnitOfWorkFactory(db *gorm.DB, topics messaging.Topics) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, topics: topics}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		topics:            f.topics,
		trackedAggregates: make([]trackedAggregate, 0),
		versions:          make(map[kernel.UUID]int64),
	}
}

type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	topics            messaging.Topics
	trackedAggregates []trackedAggregate
	versions          map[kernel.UUID]int64
}

// Begin starts a transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the open transaction. After Commit it returns
// gorm.ErrInvalidTransaction, which deferred callers ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	clear(uow.versions)
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) CustomerRepository() ports.CustomerRepository {
	return customerrepo.NewGormCustomerRepository(uow.conn())
}

func (uow *GormUnitOfWork) RestaurantRepository() ports.RestaurantRepository {
	return restaurantrepo.NewGormRestaurantRepository(uow.conn())
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

func (uow *GormUnitOfWork) OrderCreatedPaymentRequestMessagePublisher() ports.OrderCreatedPaymentRequestMessagePublisher {
	return messaging.NewPaymentRequestPublisher(uow.OutboxRepository(), uow.topics.PaymentRequest)
}

func (uow *GormUnitOfWork) OrderCancelledPaymentRequestMessagePublisher() ports.OrderCancelledPaymentRequestMessagePublisher {
	return messaging.NewPaymentCancelRequestPublisher(uow.OutboxRepository(), uow.topics.PaymentCancelRequest)
}

func (uow *GormUnitOfWork) OrderPaidRestaurantRequestMessagePublisher() ports.OrderPaidRestaurantRequestMessagePublisher {
	return messaging.NewRestaurantApprovalRequestPublisher(uow.OutboxRepository(), uow.topics.RestaurantApprovalRequest)
}

func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackVersion remembers the row version of an order read or written in this
// unit of work. The order repository updates only rows still at that version.
func (uow *GormUnitOfWork) TrackVersion(id kernel.UUID, version int64) {
	uow.versions[id] = version
}

func (uow *GormUnitOfWork) TrackedVersion(id kernel.UUID) (int64, bool) {
	v, ok := uow.versions[id]
	return v, ok
}

// TrackedAggregates returns the aggregates written since Begin. Nothing dispatches
// from this list after Commit: events leave through the outbox table.
func (uow *GormUnitOfWork) TrackedAggregates() []any {
	out := make([]any, 0, len(uow.trackedAggregates))
	for _, t := range uow.trackedAggregates {
		out = append(out, t.Aggregate)
	}
	return out
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
