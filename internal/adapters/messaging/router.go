package messaging

import (
	"context"
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// ResponseTopics names the topics the service consumes.
type ResponseTopics struct {
	PaymentResponse            string
	RestaurantApprovalResponse string
}

func (t ResponseTopics) All() []string {
	return []string{t.PaymentResponse, t.RestaurantApprovalResponse}
}

// Outcome tells a consumer how to settle a delivery.
type Outcome int

const (
	Ack Outcome = iota
	Requeue
	DeadLetter
)

func (o Outcome) String() string {
	switch o {
	case Ack:
		return "ack"
	case Requeue:
		return "requeue"
	case DeadLetter:
		return "dead_letter"
	default:
		return "unknown"
	}
}

// OutcomeOf maps a routing error to a settlement. Malformed payloads, unknown orders
// and transitions the order refused never succeed on redelivery and are dead-lettered.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return Ack
	case errors.Is(err, ErrMalformedMessage),
		errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, order.ErrStatusTransitionIsNotAllowed):
		return DeadLetter
	default:
		return Requeue
	}
}

// Router decodes response payloads by topic and hands them to the listeners.
type Router struct {
	topics   ResponseTopics
	approval ports.RestaurantApprovalResponseMessageListener
	payment  ports.PaymentResponseMessageListener
}

func NewRouter(
	topics ResponseTopics,
	approval ports.RestaurantApprovalResponseMessageListener,
	payment ports.PaymentResponseMessageListener,
) *Router {
	return &Router{
		topics:   topics,
		approval: approval,
		payment:  payment,
	}
}

func (r *Router) Topics() ResponseTopics {
	return r.topics
}

func (r *Router) Route(ctx context.Context, topic string, payload []byte) error {
	switch topic {
	case r.topics.RestaurantApprovalResponse:
		msg, err := DecodeRestaurantApprovalResponse(payload)
		if err != nil {
			return err
		}
		if msg.Status == ports.ApprovalStatusApproved {
			return r.approval.OrderApproved(ctx, msg)
		}
		return r.approval.OrderRejected(ctx, msg)

	case r.topics.PaymentResponse:
		msg, err := DecodePaymentResponse(payload)
		if err != nil {
			return err
		}
		if msg.Status == ports.PaymentStatusCompleted {
			return r.payment.PaymentCompleted(ctx, msg)
		}
		return r.payment.PaymentCancelled(ctx, msg)

	default:
		return fmt.Errorf("%w: topic %q is not consumed", ErrMalformedMessage, topic)
	}
}
