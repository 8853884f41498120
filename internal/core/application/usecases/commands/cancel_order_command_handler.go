package commands

import (
	"context"
	"log/slog"

	"ordering/internal/core/domain/services"
)

// CancelOrderCommandHandler finishes a cancellation. It is terminal bookkeeping
// and publishes nothing.
type CancelOrderCommandHandler struct {
	uowFactory    OrderUoWFactory
	domainService *services.OrderDomainService
	logger        *slog.Logger
}

func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	domainService *services.OrderDomainService,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory:    uowFactory,
		domainService: domainService,
		logger:        logger.With("component", "CancelOrderCommandHandler"),
	}
}

// Handle returns a *TransitionRejectedError unless the order is PENDING or CANCELLING.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	if err = h.domainService.CancelOrder(o, cmd.FailureMessages()); err != nil {
		return rejected(o, err)
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return saveError(err)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "order cancelled", "orderId", o.ID().String())
	return nil
}
