package listeners

import (
	"context"
	"log/slog"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

type ApproveOrderCommandHandler interface {
	Handle(ctx context.Context, cmd commands.ApproveOrderCommand) error
}

type CancelOrderPaymentCommandHandler interface {
	Handle(ctx context.Context, cmd commands.CancelOrderPaymentCommand) error
}

var _ ports.RestaurantApprovalResponseMessageListener = (*RestaurantApprovalResponseListener)(nil)

type RestaurantApprovalResponseListener struct {
	approveHandler       ApproveOrderCommandHandler
	cancelPaymentHandler CancelOrderPaymentCommandHandler
	processed            *processedMessages
	logger               *slog.Logger
}

// NewRestaurantApprovalResponseListener remembers up to cacheSize processed
// message ids.
func NewRestaurantApprovalResponseListener(
	approveHandler ApproveOrderCommandHandler,
	cancelPaymentHandler CancelOrderPaymentCommandHandler,
	cacheSize int,
	logger *slog.Logger,
) (*RestaurantApprovalResponseListener, error) {
	processed, err := newProcessedMessages(cacheSize)
	if err != nil {
		return nil, err
	}

	return &RestaurantApprovalResponseListener{
		approveHandler:       approveHandler,
		cancelPaymentHandler: cancelPaymentHandler,
		processed:            processed,
		logger:               logger.With("component", "RestaurantApprovalResponseListener"),
	}, nil
}

func (l *RestaurantApprovalResponseListener) OrderApproved(ctx context.Context, msg ports.RestaurantApprovalResponse) error {
	if l.processed.Seen(msg.ID) {
		l.logger.InfoContext(ctx, "duplicate approval skipped", "messageId", msg.ID, "orderId", msg.OrderID.String())
		return nil
	}

	cmd, err := commands.NewApproveOrderCommand(msg.OrderID)
	if err != nil {
		return err
	}

	return l.settle(ctx, msg, l.approveHandler.Handle(ctx, cmd), order.Approved)
}

func (l *RestaurantApprovalResponseListener) OrderRejected(ctx context.Context, msg ports.RestaurantApprovalResponse) error {
	if l.processed.Seen(msg.ID) {
		l.logger.InfoContext(ctx, "duplicate rejection skipped", "messageId", msg.ID, "orderId", msg.OrderID.String())
		return nil
	}

	cmd, err := commands.NewCancelOrderPaymentCommand(msg.OrderID, msg.FailureMessages)
	if err != nil {
		return err
	}

	return l.settle(ctx, msg, l.cancelPaymentHandler.Handle(ctx, cmd), order.Cancelling, order.Cancelled)
}

func (l *RestaurantApprovalResponseListener) settle(
	ctx context.Context,
	msg ports.RestaurantApprovalResponse,
	err error,
	done ...order.Status,
) error {
	if err == nil {
		l.processed.Add(msg.ID)
		return nil
	}

	if status, ok := alreadyIn(err, done...); ok {
		l.processed.Add(msg.ID)
		l.logger.InfoContext(ctx, "approval response already applied",
			"messageId", msg.ID,
			"orderId", msg.OrderID.String(),
			"approvalStatus", string(msg.Status),
			"orderStatus", status.String(),
		)
		return nil
	}

	l.logger.ErrorContext(ctx, "failed to apply approval response",
		"messageId", msg.ID,
		"orderId", msg.OrderID.String(),
		"approvalStatus", string(msg.Status),
		"error", err,
	)
	return err
}
