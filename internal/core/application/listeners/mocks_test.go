package listeners_test

import (
	"context"

	"ordering/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/mock"
)

type MockApproveOrderHandler struct{ mock.Mock }

func (m *MockApproveOrderHandler) Handle(ctx context.Context, cmd commands.ApproveOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockCancelOrderPaymentHandler struct{ mock.Mock }

func (m *MockCancelOrderPaymentHandler) Handle(ctx context.Context, cmd commands.CancelOrderPaymentCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockPayOrderHandler struct{ mock.Mock }

func (m *MockPayOrderHandler) Handle(ctx context.Context, cmd commands.PayOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockCancelOrderHandler struct{ mock.Mock }

func (m *MockCancelOrderHandler) Handle(ctx context.Context, cmd commands.CancelOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}
