package commands

import (
	"context"
	"log/slog"

	"ordering/internal/core/domain/services"
)

// PayOrderCommandHandler marks an order paid and queues the restaurant approval
// request.
type PayOrderCommandHandler struct {
	uowFactory    PayOrderUoWFactory
	domainService *services.OrderDomainService
	logger        *slog.Logger
}

func NewPayOrderCommandHandler(
	uowFactory PayOrderUoWFactory,
	domainService *services.OrderDomainService,
	logger *slog.Logger,
) PayOrderCommandHandler {
	return PayOrderCommandHandler{
		uowFactory:    uowFactory,
		domainService: domainService,
		logger:        logger.With("component", "PayOrderCommandHandler"),
	}
}

// Handle returns a *TransitionRejectedError when the order is not PENDING.
func (h PayOrderCommandHandler) Handle(ctx context.Context, cmd PayOrderCommand) error {
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

	paid, err := h.domainService.PayOrder(o)
	if err != nil {
		return rejected(o, err)
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return saveError(err)
	}

	if err = uow.OrderPaidRestaurantRequestMessagePublisher().Publish(ctx, paid); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "order paid", "orderId", o.ID().String())
	return nil
}
