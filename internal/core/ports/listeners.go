package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
)

type ApprovalStatus string

const (
	ApprovalStatusApproved ApprovalStatus = "APPROVED"
	ApprovalStatusRejected ApprovalStatus = "REJECTED"
)

// RestaurantApprovalResponse is the restaurant's verdict on a paid order.
type RestaurantApprovalResponse struct {
	ID              string
	SagaID          string
	OrderID         kernel.OrderID
	RestaurantID    kernel.RestaurantID
	CreatedAt       time.Time
	Status          ApprovalStatus
	FailureMessages []string
}

type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// PaymentResponse is the payment service's outcome for a payment request.
type PaymentResponse struct {
	ID              string
	SagaID          string
	OrderID         kernel.OrderID
	PaymentID       string
	CustomerID      kernel.CustomerID
	Price           kernel.Money
	CreatedAt       time.Time
	Status          PaymentStatus
	FailureMessages []string
}

// RestaurantApprovalResponseMessageListener receives restaurant verdicts. A nil
// error acknowledges the message; any other result asks for redelivery.
type RestaurantApprovalResponseMessageListener interface {
	OrderApproved(ctx context.Context, msg RestaurantApprovalResponse) error
	OrderRejected(ctx context.Context, msg RestaurantApprovalResponse) error
}

// PaymentResponseMessageListener receives payment outcomes. FAILED and CANCELLED
// payments are both delivered to PaymentCancelled.
type PaymentResponseMessageListener interface {
	PaymentCompleted(ctx context.Context, msg PaymentResponse) error
	PaymentCancelled(ctx context.Context, msg PaymentResponse) error
}
