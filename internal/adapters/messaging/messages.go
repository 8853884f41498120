// Package messaging defines the JSON contracts exchanged with the payment and
// restaurant services and maps them to and from the order core.
package messaging

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

const (
	EventTypeOrderCreated   = "OrderCreated"
	EventTypeOrderCancelled = "OrderCancelled"
	EventTypeOrderPaid      = "OrderPaid"
)

type PaymentOrderStatus string

const (
	PaymentOrderStatusPending   PaymentOrderStatus = "PENDING"
	PaymentOrderStatusCancelled PaymentOrderStatus = "CANCELLED"
)

// PaymentRequest asks the payment service to charge (PENDING) or refund
// (CANCELLED) the customer.
type PaymentRequest struct {
	ID                 string             `json:"id"`
	SagaID             string             `json:"sagaId"`
	CustomerID         string             `json:"customerId"`
	OrderID            string             `json:"orderId"`
	Price              decimal.Decimal    `json:"price"`
	CreatedAt          time.Time          `json:"createdAt"`
	PaymentOrderStatus PaymentOrderStatus `json:"paymentOrderStatus"`
}

type RestaurantOrderStatus string

const RestaurantOrderStatusPaid RestaurantOrderStatus = "PAID"

type ProductLine struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// RestaurantApprovalRequest asks the restaurant to accept a paid order.
type RestaurantApprovalRequest struct {
	ID                    string                `json:"id"`
	SagaID                string                `json:"sagaId"`
	RestaurantID          string                `json:"restaurantId"`
	OrderID               string                `json:"orderId"`
	RestaurantOrderStatus RestaurantOrderStatus `json:"restaurantOrderStatus"`
	Products              []ProductLine         `json:"products"`
	Price                 decimal.Decimal       `json:"price"`
	CreatedAt             time.Time             `json:"createdAt"`
}

// RestaurantApprovalResponse is the restaurant's verdict as sent on the wire.
type RestaurantApprovalResponse struct {
	ID                  string    `json:"id"`
	SagaID              string    `json:"sagaId"`
	OrderID             string    `json:"orderId"`
	RestaurantID        string    `json:"restaurantId"`
	CreatedAt           time.Time `json:"createdAt"`
	OrderApprovalStatus string    `json:"orderApprovalStatus"`
	FailureMessages     []string  `json:"failureMessages"`
}

// PaymentResponse is the payment outcome as sent on the wire.
type PaymentResponse struct {
	ID              string          `json:"id"`
	SagaID          string          `json:"sagaId"`
	OrderID         string          `json:"orderId"`
	PaymentID       string          `json:"paymentId"`
	CustomerID      string          `json:"customerId"`
	Price           decimal.Decimal `json:"price"`
	CreatedAt       time.Time       `json:"createdAt"`
	PaymentStatus   string          `json:"paymentStatus"`
	FailureMessages []string        `json:"failureMessages"`
}

func NewPaymentRequest(e order.Event, status PaymentOrderStatus) PaymentRequest {
	return PaymentRequest{
		ID:                 kernel.NewUUID().String(),
		SagaID:             e.SagaID.String(),
		CustomerID:         e.CustomerID.String(),
		OrderID:            e.OrderID.String(),
		Price:              e.Price.Amount(),
		CreatedAt:          e.CreatedAt,
		PaymentOrderStatus: status,
	}
}

func NewRestaurantApprovalRequest(e order.PaidEvent) RestaurantApprovalRequest {
	products := make([]ProductLine, 0, len(e.Items))
	for _, item := range e.Items {
		products = append(products, ProductLine{
			ID:       item.ProductID.String(),
			Quantity: item.Quantity,
		})
	}

	return RestaurantApprovalRequest{
		ID:                    kernel.NewUUID().String(),
		SagaID:                e.SagaID.String(),
		RestaurantID:          e.RestaurantID.String(),
		OrderID:               e.OrderID.String(),
		RestaurantOrderStatus: RestaurantOrderStatusPaid,
		Products:              products,
		Price:                 e.Price.Amount(),
		CreatedAt:             e.CreatedAt,
	}
}
