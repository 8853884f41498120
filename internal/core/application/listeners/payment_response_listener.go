package listeners

import (
	"context"
	"log/slog"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

type PayOrderCommandHandler interface {
	Handle(ctx context.Context, cmd commands.PayOrderCommand) error
}

type CancelOrderCommandHandler interface {
	Handle(ctx context.Context, cmd commands.CancelOrderCommand) error
}

var _ ports.PaymentResponseMessageListener = (*PaymentResponseListener)(nil)

type PaymentResponseListener struct {
	payHandler    PayOrderCommandHandler
	cancelHandler CancelOrderCommandHandler
	processed     *processedMessages
	logger        *slog.Logger
}

func NewPaymentResponseListener(
	payHandler PayOrderCommandHandler,
	cancelHandler CancelOrderCommandHandler,
	cacheSize int,
	logger *slog.Logger,
) (*PaymentResponseListener, error) {
	processed, err := newProcessedMessages(cacheSize)
	if err != nil {
		return nil, err
	}

	return &PaymentResponseListener{
		payHandler:    payHandler,
		cancelHandler: cancelHandler,
		processed:     processed,
		logger:        logger.With("component", "PaymentResponseListener"),
	}, nil
}

// PaymentCompleted pays the order. A replay is recognized when the order is PAID
// or has moved past it (APPROVED, CANCELLING).
func (l *PaymentResponseListener) PaymentCompleted(ctx context.Context, msg ports.PaymentResponse) error {
	if l.processed.Seen(msg.ID) {
		l.logger.InfoContext(ctx, "duplicate payment completion skipped", "messageId", msg.ID, "orderId", msg.OrderID.String())
		return nil
	}

	cmd, err := commands.NewPayOrderCommand(msg.OrderID)
	if err != nil {
		return err
	}

	return l.settle(ctx, msg, l.payHandler.Handle(ctx, cmd), order.Paid, order.Approved, order.Cancelling)
}

// PaymentCancelled finishes a cancellation: a PENDING order whose payment failed or
// a CANCELLING order whose payment was reverted becomes CANCELLED.
func (l *PaymentResponseListener) PaymentCancelled(ctx context.Context, msg ports.PaymentResponse) error {
	if l.processed.Seen(msg.ID) {
		l.logger.InfoContext(ctx, "duplicate payment cancellation skipped", "messageId", msg.ID, "orderId", msg.OrderID.String())
		return nil
	}

	cmd, err := commands.NewCancelOrderCommand(msg.OrderID, msg.FailureMessages)
	if err != nil {
		return err
	}

	return l.settle(ctx, msg, l.cancelHandler.Handle(ctx, cmd), order.Cancelled)
}

func (l *PaymentResponseListener) settle(ctx context.Context, msg ports.PaymentResponse, err error, done ...order.Status) error {
	if err == nil {
		l.processed.Add(msg.ID)
		return nil
	}

	if status, ok := alreadyIn(err, done...); ok {
		l.processed.Add(msg.ID)
		l.logger.InfoContext(ctx, "payment response already applied",
			"messageId", msg.ID,
			"orderId", msg.OrderID.String(),
			"paymentStatus", string(msg.Status),
			"orderStatus", status.String(),
		)
		return nil
	}

	l.logger.ErrorContext(ctx, "failed to apply payment response",
		"messageId", msg.ID,
		"orderId", msg.OrderID.String(),
		"paymentStatus", string(msg.Status),
		"error", err,
	)
	return err
}
