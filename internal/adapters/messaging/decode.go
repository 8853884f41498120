package messaging

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
)

// ErrMalformedMessage marks payloads that can never be processed. Consumers
// dead-letter them instead of asking for redelivery.
var ErrMalformedMessage = errors.New("malformed message")

func DecodeRestaurantApprovalResponse(payload []byte) (ports.RestaurantApprovalResponse, error) {
	var wire RestaurantApprovalResponse
	if err := json.Unmarshal(payload, &wire); err != nil {
		return ports.RestaurantApprovalResponse{}, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	var status ports.ApprovalStatus
	switch ports.ApprovalStatus(wire.OrderApprovalStatus) {
	case ports.ApprovalStatusApproved, ports.ApprovalStatusRejected:
		status = ports.ApprovalStatus(wire.OrderApprovalStatus)
	default:
		return ports.RestaurantApprovalResponse{}, malformed("orderApprovalStatus %q is unknown", wire.OrderApprovalStatus)
	}

	orderID, idErr := parseID("orderId", wire.OrderID)
	restaurantID, restaurantErr := parseID("restaurantId", wire.RestaurantID)
	if err := errors.Join(requireID(wire.ID), idErr, restaurantErr); err != nil {
		return ports.RestaurantApprovalResponse{}, err
	}

	return ports.RestaurantApprovalResponse{
		ID:              wire.ID,
		SagaID:          wire.SagaID,
		OrderID:         kernel.NewOrderID(orderID),
		RestaurantID:    kernel.NewRestaurantID(restaurantID),
		CreatedAt:       wire.CreatedAt,
		Status:          status,
		FailureMessages: wire.FailureMessages,
	}, nil
}

func DecodePaymentResponse(payload []byte) (ports.PaymentResponse, error) {
	var wire PaymentResponse
	if err := json.Unmarshal(payload, &wire); err != nil {
		return ports.PaymentResponse{}, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	var status ports.PaymentStatus
	switch ports.PaymentStatus(wire.PaymentStatus) {
	case ports.PaymentStatusCompleted, ports.PaymentStatusCancelled, ports.PaymentStatusFailed:
		status = ports.PaymentStatus(wire.PaymentStatus)
	default:
		return ports.PaymentResponse{}, malformed("paymentStatus %q is unknown", wire.PaymentStatus)
	}

	orderID, idErr := parseID("orderId", wire.OrderID)
	customerID, customerErr := parseID("customerId", wire.CustomerID)
	price, priceErr := kernel.NewMoney(wire.Price)
	if priceErr != nil {
		priceErr = fmt.Errorf("%w: %w", ErrMalformedMessage, priceErr)
	}
	if err := errors.Join(requireID(wire.ID), idErr, customerErr, priceErr); err != nil {
		return ports.PaymentResponse{}, err
	}

	return ports.PaymentResponse{
		ID:              wire.ID,
		SagaID:          wire.SagaID,
		OrderID:         kernel.NewOrderID(orderID),
		PaymentID:       wire.PaymentID,
		CustomerID:      kernel.NewCustomerID(customerID),
		Price:           price,
		CreatedAt:       wire.CreatedAt,
		Status:          status,
		FailureMessages: wire.FailureMessages,
	}, nil
}

func parseID(field, value string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("%w: %s: %w", ErrMalformedMessage, field, err)
	}
	return id, nil
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return malformed("id is required")
	}
	return nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedMessage, fmt.Sprintf(format, args...))
}
