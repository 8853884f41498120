package messaging_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ordering/internal/adapters/messaging"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/outbox"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

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

var _ ports.OutboxRepository = (*MockOutboxRepository)(nil)

func createdOrder(t *testing.T) (*order.Order, order.CreatedEvent) {
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

	svc := services.NewOrderDomainService(order.NewRandomIdentityGenerator(), func() time.Time { return createdAt })
	event, err := svc.ValidateAndInitiateOrder(o, r)
	require.NoError(t, err)
	return o, event
}

func TestPaymentRequestPublisher_Publish(t *testing.T) {
	o, event := createdOrder(t)
	repo := new(MockOutboxRepository)
	var stored *outbox.Message
	repo.On("Add", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*outbox.Message)
	}).Return(nil).Once()

	err := messaging.NewPaymentRequestPublisher(repo, "payment-request").Publish(t.Context(), event)

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "payment-request", stored.Topic())
	assert.Equal(t, o.ID().String(), stored.Key())
	assert.Equal(t, messaging.EventTypeOrderCreated, stored.EventType())
	assert.True(t, stored.SagaID().IsEqual(o.ID().UUID))
	assert.False(t, stored.IsSent())

	var wire messaging.PaymentRequest
	require.NoError(t, json.Unmarshal(stored.Payload(), &wire))
	assert.Equal(t, o.ID().String(), wire.OrderID)
	assert.Equal(t, o.ID().String(), wire.SagaID)
	assert.Equal(t, o.CustomerID().String(), wire.CustomerID)
	assert.True(t, wire.Price.Equal(decimal.RequireFromString("20")))
	assert.Equal(t, messaging.PaymentOrderStatusPending, wire.PaymentOrderStatus)
	assert.True(t, createdAt.Equal(wire.CreatedAt))
	assert.NotEmpty(t, wire.ID)
	repo.AssertExpectations(t)
}

func TestPaymentCancelRequestPublisher_Publish(t *testing.T) {
	o, _ := createdOrder(t)
	require.NoError(t, o.Pay())
	require.NoError(t, o.InitCancel([]string{"closed"}))
	repo := new(MockOutboxRepository)
	var stored *outbox.Message
	repo.On("Add", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*outbox.Message)
	}).Return(nil).Once()

	err := messaging.NewPaymentCancelRequestPublisher(repo, "payment-cancel").
		Publish(t.Context(), order.NewCancelledEvent(o, createdAt))

	require.NoError(t, err)
	assert.Equal(t, messaging.EventTypeOrderCancelled, stored.EventType())
	var wire messaging.PaymentRequest
	require.NoError(t, json.Unmarshal(stored.Payload(), &wire))
	assert.Equal(t, messaging.PaymentOrderStatusCancelled, wire.PaymentOrderStatus)
}

func TestRestaurantApprovalRequestPublisher_Publish(t *testing.T) {
	o, _ := createdOrder(t)
	require.NoError(t, o.Pay())
	repo := new(MockOutboxRepository)
	var stored *outbox.Message
	repo.On("Add", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*outbox.Message)
	}).Return(nil).Once()

	err := messaging.NewRestaurantApprovalRequestPublisher(repo, "restaurant-approval-request").
		Publish(t.Context(), order.NewPaidEvent(o, createdAt))

	require.NoError(t, err)
	var wire messaging.RestaurantApprovalRequest
	require.NoError(t, json.Unmarshal(stored.Payload(), &wire))
	assert.Equal(t, o.RestaurantID().String(), wire.RestaurantID)
	assert.Equal(t, messaging.RestaurantOrderStatusPaid, wire.RestaurantOrderStatus)
	require.Len(t, wire.Products, 1)
	assert.Equal(t, o.Items()[0].Product().ID().String(), wire.Products[0].ID)
	assert.Equal(t, 2, wire.Products[0].Quantity)
}

func TestDecodeRestaurantApprovalResponse(t *testing.T) {
	orderID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()

	t.Run("should decode a rejection", func(t *testing.T) {
		payload := []byte(`{"id":"m-1","sagaId":"` + orderID.String() + `","orderId":"` + orderID.String() +
			`","restaurantId":"` + restaurantID.String() + `","createdAt":"2026-03-01T12:00:00Z",` +
			`"orderApprovalStatus":"REJECTED","failureMessages":["closed"]}`)

		msg, err := messaging.DecodeRestaurantApprovalResponse(payload)

		require.NoError(t, err)
		assert.Equal(t, "m-1", msg.ID)
		assert.Equal(t, kernel.NewOrderID(orderID), msg.OrderID)
		assert.Equal(t, kernel.NewRestaurantID(restaurantID), msg.RestaurantID)
		assert.Equal(t, ports.ApprovalStatusRejected, msg.Status)
		assert.Equal(t, []string{"closed"}, msg.FailureMessages)
	})

	t.Run("should flag broken payloads as malformed", func(t *testing.T) {
		for name, payload := range map[string]string{
			"not json":       `{`,
			"unknown status": `{"id":"m-1","orderId":"` + orderID.String() + `","restaurantId":"` + restaurantID.String() + `","orderApprovalStatus":"MAYBE"}`,
			"bad order id":   `{"id":"m-1","orderId":"nope","restaurantId":"` + restaurantID.String() + `","orderApprovalStatus":"APPROVED"}`,
			"missing id":     `{"orderId":"` + orderID.String() + `","restaurantId":"` + restaurantID.String() + `","orderApprovalStatus":"APPROVED"}`,
		} {
			_, err := messaging.DecodeRestaurantApprovalResponse([]byte(payload))
			require.ErrorIs(t, err, messaging.ErrMalformedMessage, name)
		}
	})
}

func TestDecodePaymentResponse(t *testing.T) {
	orderID := kernel.NewUUID()
	customerID := kernel.NewUUID()

	t.Run("should decode a completed payment", func(t *testing.T) {
		payload := []byte(`{"id":"p-1","sagaId":"` + orderID.String() + `","orderId":"` + orderID.String() +
			`","paymentId":"pay-9","customerId":"` + customerID.String() + `","price":"20.00",` +
			`"createdAt":"2026-03-01T12:00:00Z","paymentStatus":"COMPLETED","failureMessages":[]}`)

		msg, err := messaging.DecodePaymentResponse(payload)

		require.NoError(t, err)
		assert.Equal(t, ports.PaymentStatusCompleted, msg.Status)
		assert.Equal(t, "pay-9", msg.PaymentID)
		assert.True(t, msg.Price.IsEqual(kernel.MustMoney("20.00")))
		assert.Equal(t, kernel.NewCustomerID(customerID), msg.CustomerID)
	})

	t.Run("should reject a negative price", func(t *testing.T) {
		payload := []byte(`{"id":"p-1","orderId":"` + orderID.String() + `","customerId":"` + customerID.String() +
			`","price":"-1","paymentStatus":"FAILED"}`)

		_, err := messaging.DecodePaymentResponse(payload)

		require.ErrorIs(t, err, messaging.ErrMalformedMessage)
	})
}
