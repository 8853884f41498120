package messaging

import (
	"context"
	"encoding/json"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/outbox"
	"ordering/internal/core/ports"
)

// Topics names the broker destination of each outbound request.
type Topics struct {
	PaymentRequest            string
	PaymentCancelRequest      string
	RestaurantApprovalRequest string
}

// PaymentRequestPublisher queues a PENDING payment request for a created order.
type PaymentRequestPublisher struct {
	outbox ports.OutboxRepository
	topic  string
}

func NewPaymentRequestPublisher(outbox ports.OutboxRepository, topic string) PaymentRequestPublisher {
	return PaymentRequestPublisher{outbox: outbox, topic: topic}
}

func (p PaymentRequestPublisher) Publish(ctx context.Context, e order.CreatedEvent) error {
	return enqueue(ctx, p.outbox, p.topic, EventTypeOrderCreated, e.Event,
		NewPaymentRequest(e.Event, PaymentOrderStatusPending))
}

// PaymentCancelRequestPublisher queues a CANCELLED payment request for an order
// the restaurant rejected.
type PaymentCancelRequestPublisher struct {
	outbox ports.OutboxRepository
	topic  string
}

func NewPaymentCancelRequestPublisher(outbox ports.OutboxRepository, topic string) PaymentCancelRequestPublisher {
	return PaymentCancelRequestPublisher{outbox: outbox, topic: topic}
}

func (p PaymentCancelRequestPublisher) Publish(ctx context.Context, e order.CancelledEvent) error {
	return enqueue(ctx, p.outbox, p.topic, EventTypeOrderCancelled, e.Event,
		NewPaymentRequest(e.Event, PaymentOrderStatusCancelled))
}

// RestaurantApprovalRequestPublisher queues an approval request for a paid order.
type RestaurantApprovalRequestPublisher struct {
	outbox ports.OutboxRepository
	topic  string
}

func NewRestaurantApprovalRequestPublisher(outbox ports.OutboxRepository, topic string) RestaurantApprovalRequestPublisher {
	return RestaurantApprovalRequestPublisher{outbox: outbox, topic: topic}
}

func (p RestaurantApprovalRequestPublisher) Publish(ctx context.Context, e order.PaidEvent) error {
	return enqueue(ctx, p.outbox, p.topic, EventTypeOrderPaid, e.Event, NewRestaurantApprovalRequest(e))
}

// enqueue stores the message keyed by order id so a partitioned bus keeps the
// messages of one order in sequence.
func enqueue(ctx context.Context, repo ports.OutboxRepository, topic, eventType string, e order.Event, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	m, err := outbox.NewMessage(e.SagaID, topic, e.OrderID.String(), eventType, data, e.CreatedAt)
	if err != nil {
		return err
	}
	return repo.Add(ctx, m)
}
