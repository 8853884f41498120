package commands

import (
	"context"
	"log/slog"

	"ordering/internal/core/domain/services"
)

// ApproveOrderCommandHandler completes the happy path of an order. Nothing is
// published: approval ends the workflow.
type ApproveOrderCommandHandler struct {
	uowFactory    OrderUoWFactory
	domainService *services.OrderDomainService
	logger        *slog.Logger
}

func NewApproveOrderCommandHandler(
	uowFactory OrderUoWFactory,
	domainService *services.OrderDomainService,
	logger *slog.Logger,
) ApproveOrderCommandHandler {
	return ApproveOrderCommandHandler{
		uowFactory:    uowFactory,
		domainService: domainService,
		logger:        logger.With("component", "ApproveOrderCommandHandler"),
	}
}

// Handle returns a *TransitionRejectedError when the order is not PAID.
func (h ApproveOrderCommandHandler) Handle(ctx context.Context, cmd ApproveOrderCommand) error {
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

	if _, err = h.domainService.ApproveOrder(o); err != nil {
		return rejected(o, err)
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return saveError(err)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "order approved", "orderId", o.ID().String())
	return nil
}
