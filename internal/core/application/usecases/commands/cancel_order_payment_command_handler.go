package commands

import (
	"context"
	"log/slog"

	"ordering/internal/core/domain/services"
)

// CancelOrderPaymentCommandHandler moves a rejected order to CANCELLING and
// queues the payment reversal.
type CancelOrderPaymentCommandHandler struct {
	uowFactory    CancelOrderPaymentUoWFactory
	domainService *services.OrderDomainService
	logger        *slog.Logger
}

func NewCancelOrderPaymentCommandHandler(
	uowFactory CancelOrderPaymentUoWFactory,
	domainService *services.OrderDomainService,
	logger *slog.Logger,
) CancelOrderPaymentCommandHandler {
	return CancelOrderPaymentCommandHandler{
		uowFactory:    uowFactory,
		domainService: domainService,
		logger:        logger.With("component", "CancelOrderPaymentCommandHandler"),
	}
}

// Handle returns a *TransitionRejectedError when the order is not PAID.
func (h CancelOrderPaymentCommandHandler) Handle(ctx context.Context, cmd CancelOrderPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	cancelled, err := h.domainService.CancelOrderPayment(o, cmd.FailureMessages())
	if err != nil {
		return rejected(o, err)
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return saveError(err)
	}

	if err = uow.OrderCancelledPaymentRequestMessagePublisher().Publish(ctx, cancelled); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "order cancelling",
		"orderId", o.ID().String(),
		"failureMessages", o.FailureMessages(),
	)
	return nil
}
