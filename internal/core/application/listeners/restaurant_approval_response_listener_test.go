package listeners_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"ordering/internal/core/application/listeners"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func transitionRejected(orderID kernel.OrderID, status order.Status) error {
	return &commands.TransitionRejectedError{
		OrderID: orderID,
		Status:  status,
		Err:     errs.NewDomainErrorWithCause("transition rejected", order.ErrStatusTransitionIsNotAllowed),
	}
}

func approvalResponse(id string, status ports.ApprovalStatus, msgs ...string) ports.RestaurantApprovalResponse {
	orderID := kernel.NewOrderID(kernel.NewUUID())
	return ports.RestaurantApprovalResponse{
		ID:              id,
		SagaID:          orderID.String(),
		OrderID:         orderID,
		RestaurantID:    kernel.NewRestaurantID(kernel.NewUUID()),
		Status:          status,
		FailureMessages: msgs,
	}
}

func newApprovalListener(
	t *testing.T,
) (*listeners.RestaurantApprovalResponseListener, *MockApproveOrderHandler, *MockCancelOrderPaymentHandler) {
	t.Helper()

	approve := &MockApproveOrderHandler{}
	cancelPayment := &MockCancelOrderPaymentHandler{}
	listener, err := listeners.NewRestaurantApprovalResponseListener(approve, cancelPayment, 16, discardLogger())
	require.NoError(t, err)

	return listener, approve, cancelPayment
}

func TestNewRestaurantApprovalResponseListener(t *testing.T) {
	t.Run("should reject non-positive cache size", func(t *testing.T) {
		_, err := listeners.NewRestaurantApprovalResponseListener(
			&MockApproveOrderHandler{}, &MockCancelOrderPaymentHandler{}, 0, discardLogger())

		assert.Error(t, err)
	})
}

func TestRestaurantApprovalResponseListener_OrderApproved(t *testing.T) {
	ctx := context.Background()

	t.Run("should approve the order from the message", func(t *testing.T) {
		listener, approve, _ := newApprovalListener(t)
		msg := approvalResponse("msg-1", ports.ApprovalStatusApproved)

		approve.On("Handle", ctx, mock.MatchedBy(func(cmd commands.ApproveOrderCommand) bool {
			return cmd.OrderID() == msg.OrderID
		})).Return(nil).Once()

		require.NoError(t, listener.OrderApproved(ctx, msg))
		approve.AssertExpectations(t)
	})

	t.Run("should skip a message id it already processed", func(t *testing.T) {
		listener, approve, _ := newApprovalListener(t)
		msg := approvalResponse("msg-1", ports.ApprovalStatusApproved)

		approve.On("Handle", ctx, mock.Anything).Return(nil).Once()

		require.NoError(t, listener.OrderApproved(ctx, msg))
		require.NoError(t, listener.OrderApproved(ctx, msg))
		approve.AssertNumberOfCalls(t, "Handle", 1)
	})

	t.Run("should acknowledge a replay against an approved order", func(t *testing.T) {
		listener, approve, _ := newApprovalListener(t)
		msg := approvalResponse("msg-1", ports.ApprovalStatusApproved)

		approve.On("Handle", ctx, mock.Anything).Return(transitionRejected(msg.OrderID, order.Approved)).Once()

		require.NoError(t, listener.OrderApproved(ctx, msg))
		require.NoError(t, listener.OrderApproved(ctx, msg))
		approve.AssertNumberOfCalls(t, "Handle", 1)
	})

	t.Run("should return a transition rejected for another status", func(t *testing.T) {
		listener, approve, _ := newApprovalListener(t)
		msg := approvalResponse("msg-1", ports.ApprovalStatusApproved)

		approve.On("Handle", ctx, mock.Anything).Return(transitionRejected(msg.OrderID, order.Pending))

		err := listener.OrderApproved(ctx, msg)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrDomain)
	})

	t.Run("should return a version conflict and retry it on redelivery", func(t *testing.T) {
		listener, approve, _ := newApprovalListener(t)
		msg := approvalResponse("msg-1", ports.ApprovalStatusApproved)

		approve.On("Handle", ctx, mock.Anything).Return(errs.NewVersionIsInvalidError("order")).Once()
		approve.On("Handle", ctx, mock.Anything).Return(nil).Once()

		err := listener.OrderApproved(ctx, msg)
		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)

		require.NoError(t, listener.OrderApproved(ctx, msg))
		approve.AssertNumberOfCalls(t, "Handle", 2)
	})

	t.Run("should reject a message without order id", func(t *testing.T) {
		listener, approve, _ := newApprovalListener(t)
		msg := approvalResponse("msg-1", ports.ApprovalStatusApproved)
		msg.OrderID = kernel.OrderID{}

		err := listener.OrderApproved(ctx, msg)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		approve.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestRestaurantApprovalResponseListener_OrderRejected(t *testing.T) {
	ctx := context.Background()

	t.Run("should start the payment cancellation with the failure messages", func(t *testing.T) {
		listener, approve, cancelPayment := newApprovalListener(t)
		msg := approvalResponse("msg-2", ports.ApprovalStatusRejected, "product unavailable")

		cancelPayment.On("Handle", ctx, mock.MatchedBy(func(cmd commands.CancelOrderPaymentCommand) bool {
			return cmd.OrderID() == msg.OrderID &&
				assert.ObjectsAreEqual([]string{"product unavailable"}, cmd.FailureMessages())
		})).Return(nil).Once()

		require.NoError(t, listener.OrderRejected(ctx, msg))
		cancelPayment.AssertExpectations(t)
		approve.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should acknowledge a replay against a cancelling or cancelled order", func(t *testing.T) {
		for _, status := range []order.Status{order.Cancelling, order.Cancelled} {
			listener, _, cancelPayment := newApprovalListener(t)
			msg := approvalResponse("msg-2", ports.ApprovalStatusRejected)

			cancelPayment.On("Handle", ctx, mock.Anything).Return(transitionRejected(msg.OrderID, status))

			assert.NoError(t, listener.OrderRejected(ctx, msg), status.String())
		}
	})

	t.Run("should return a rejection of a pending order", func(t *testing.T) {
		listener, _, cancelPayment := newApprovalListener(t)
		msg := approvalResponse("msg-2", ports.ApprovalStatusRejected)

		cancelPayment.On("Handle", ctx, mock.Anything).Return(transitionRejected(msg.OrderID, order.Pending))

		assert.ErrorIs(t, listener.OrderRejected(ctx, msg), order.ErrStatusTransitionIsNotAllowed)
	})

	t.Run("should not remember messages without id", func(t *testing.T) {
		listener, _, cancelPayment := newApprovalListener(t)
		msg := approvalResponse("", ports.ApprovalStatusRejected)

		cancelPayment.On("Handle", ctx, mock.Anything).Return(nil)

		require.NoError(t, listener.OrderRejected(ctx, msg))
		require.NoError(t, listener.OrderRejected(ctx, msg))
		cancelPayment.AssertNumberOfCalls(t, "Handle", 2)
	})
}
