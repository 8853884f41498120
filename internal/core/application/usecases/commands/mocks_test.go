package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/outbox"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByTrackingID(ctx context.Context, id order.TrackingID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.CustomerID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*customer.Customer)
	return c, args.Error(1)
}

type MockRestaurantRepository struct{ mock.Mock }

func (m *MockRestaurantRepository) GetRestaurantInformation(
	ctx context.Context,
	id kernel.RestaurantID,
	productIDs []kernel.ProductID,
) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, id, productIDs)
	r, _ := args.Get(0).(*restaurant.Restaurant)
	return r, args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, msg *outbox.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockOutboxRepository) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	msgs, _ := args.Get(0).([]*outbox.Message)
	return msgs, args.Error(1)
}

func (m *MockOutboxRepository) Update(ctx context.Context, msg *outbox.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockOutboxRepository) DeleteSentBefore(ctx context.Context, t time.Time) (int64, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}

type MockCreatedPublisher struct{ mock.Mock }

func (m *MockCreatedPublisher) Publish(ctx context.Context, e order.CreatedEvent) error {
	return m.Called(ctx, e).Error(0)
}

type MockCancelledPublisher struct{ mock.Mock }

func (m *MockCancelledPublisher) Publish(ctx context.Context, e order.CancelledEvent) error {
	return m.Called(ctx, e).Error(0)
}

type MockPaidPublisher struct{ mock.Mock }

func (m *MockPaidPublisher) Publish(ctx context.Context, e order.PaidEvent) error {
	return m.Called(ctx, e).Error(0)
}

type MockMessageBus struct{ mock.Mock }

func (m *MockMessageBus) Publish(ctx context.Context, topic, key string, payload []byte) error {
	return m.Called(ctx, topic, key, payload).Error(0)
}

// MockUoW records transaction calls and hands out the configured doubles.
type MockUoW struct {
	mock.Mock

	orders      *MockOrderRepository
	customers   *MockCustomerRepository
	restaurants *MockRestaurantRepository
	outbox      *MockOutboxRepository
	created     *MockCreatedPublisher
	cancelled   *MockCancelledPublisher
	paid        *MockPaidPublisher
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders:      new(MockOrderRepository),
		customers:   new(MockCustomerRepository),
		restaurants: new(MockRestaurantRepository),
		outbox:      new(MockOutboxRepository),
		created:     new(MockCreatedPublisher),
		cancelled:   new(MockCancelledPublisher),
		paid:        new(MockPaidPublisher),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository           { return m.orders }
func (m *MockUoW) CustomerRepository() ports.CustomerRepository     { return m.customers }
func (m *MockUoW) RestaurantRepository() ports.RestaurantRepository { return m.restaurants }
func (m *MockUoW) OutboxRepository() ports.OutboxRepository         { return m.outbox }

func (m *MockUoW) OrderCreatedPaymentRequestMessagePublisher() ports.OrderCreatedPaymentRequestMessagePublisher {
	return m.created
}

func (m *MockUoW) OrderCancelledPaymentRequestMessagePublisher() ports.OrderCancelledPaymentRequestMessagePublisher {
	return m.cancelled
}

func (m *MockUoW) OrderPaidRestaurantRequestMessagePublisher() ports.OrderPaidRestaurantRequestMessagePublisher {
	return m.paid
}

// expectTx expects Begin, then (optionally) Commit, then the deferred Rollback.
func (m *MockUoW) expectTx(ctx context.Context, commit bool) {
	m.On("Begin", ctx).Return(nil).Once()
	if commit {
		m.On("Commit", ctx).Return(nil).Once()
	}
	m.On("Rollback", ctx).Return(nil).Once()
}

func (m *MockUoW) assertAll(t *testing.T) {
	t.Helper()
	m.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.customers.AssertExpectations(t)
	m.restaurants.AssertExpectations(t)
	m.outbox.AssertExpectations(t)
	m.created.AssertExpectations(t)
	m.cancelled.AssertExpectations(t)
	m.paid.AssertExpectations(t)
}

type createOrderUoWFactory struct{ uow *MockUoW }

func (f createOrderUoWFactory) Create() commands.CreateOrderUoW { return f.uow }

type orderUoWFactory struct{ uow *MockUoW }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.uow }

type payOrderUoWFactory struct{ uow *MockUoW }

func (f payOrderUoWFactory) Create() commands.PayOrderUoW { return f.uow }

type cancelOrderPaymentUoWFactory struct{ uow *MockUoW }

func (f cancelOrderPaymentUoWFactory) Create() commands.CancelOrderPaymentUoW { return f.uow }

type outboxUoWFactory struct{ uow *MockUoW }

func (f outboxUoWFactory) Create() commands.OutboxUoW { return f.uow }

func newDomainService() *services.OrderDomainService {
	return services.NewOrderDomainService(order.NewRandomIdentityGenerator(), func() time.Time { return fixedNow })
}

// persistedOrder returns an initialized 20.00 order moved to the given status.
func persistedOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	product, err := restaurant.NewProduct(kernel.NewProductID(kernel.NewUUID()), "Pizza", kernel.MustMoney("10.00"), true)
	require.NoError(t, err)
	item, err := order.NewItem(product, 2, kernel.MustMoney("10.00"), kernel.MustMoney("20.00"))
	require.NoError(t, err)
	address, err := order.NewStreetAddress("Main street 1", "10115", "Berlin")
	require.NoError(t, err)
	r, err := restaurant.NewRestaurant(kernel.NewRestaurantID(kernel.NewUUID()), true, []restaurant.Product{product})
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewCustomerID(kernel.NewUUID()), r.ID(), address, kernel.MustMoney("20.00"), []*order.Item{item})
	require.NoError(t, err)

	_, err = newDomainService().ValidateAndInitiateOrder(o, r)
	require.NoError(t, err)

	switch status {
	case order.Pending:
	case order.Paid:
		require.NoError(t, o.Pay())
	case order.Approved:
		require.NoError(t, o.Pay())
		require.NoError(t, o.Approve())
	case order.Cancelling:
		require.NoError(t, o.Pay())
		require.NoError(t, o.InitCancel([]string{"restaurant closed"}))
	case order.Cancelled:
		require.NoError(t, o.Cancel([]string{"payment failed"}))
	default:
		t.Fatalf("unsupported status %s", status)
	}
	return o
}
