package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"
)

// OrderCreatedMessage is returned to the client after a successful create.
const OrderCreatedMessage = "Order created successfully"

type CreateOrderResponse struct {
	TrackingID order.TrackingID
	Status     order.Status
	Message    string
}

// CreateOrderCommandHandler validates a new order against its customer and
// restaurant, stores it and queues the payment request in the same transaction.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, domainService, logger)
//	resp, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrDomain):
//	    // rejected by a business rule, report to the client
//	case err != nil:
//	    // infrastructure failure
//	}
type CreateOrderCommandHandler struct {
	uowFactory    CreateOrderUoWFactory
	domainService *services.OrderDomainService
	logger        *slog.Logger
}

func NewCreateOrderCommandHandler(
	uowFactory CreateOrderUoWFactory,
	domainService *services.OrderDomainService,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:    uowFactory,
		domainService: domainService,
		logger:        logger.With("component", "CreateOrderCommandHandler"),
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResponse, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.CustomerRepository().Get(ctx, cmd.CustomerID()); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return CreateOrderResponse{}, errs.NewDomainErrorWithCause(
				fmt.Sprintf("customer not found: %s", cmd.CustomerID()), err)
		}
		return CreateOrderResponse{}, err
	}

	r, err := uow.RestaurantRepository().GetRestaurantInformation(ctx, cmd.RestaurantID(), cmd.ProductIDs())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return CreateOrderResponse{}, errs.NewDomainErrorWithCause(
				fmt.Sprintf("restaurant not found: %s", cmd.RestaurantID()), err)
		}
		return CreateOrderResponse{}, err
	}

	o, err := newOrderFromCommand(cmd)
	if err != nil {
		return CreateOrderResponse{}, err
	}

	created, err := h.domainService.ValidateAndInitiateOrder(o, r)
	if err != nil {
		return CreateOrderResponse{}, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return CreateOrderResponse{}, saveError(err)
	}

	if err = uow.OrderCreatedPaymentRequestMessagePublisher().Publish(ctx, created); err != nil {
		return CreateOrderResponse{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResponse{}, err
	}

	h.logger.InfoContext(ctx, "order created",
		"orderId", o.ID().String(),
		"trackingId", o.TrackingID().String(),
	)

	return CreateOrderResponse{
		TrackingID: o.TrackingID(),
		Status:     o.Status(),
		Message:    OrderCreatedMessage,
	}, nil
}

func newOrderFromCommand(cmd CreateOrderCommand) (*order.Order, error) {
	address, err := order.NewStreetAddress(cmd.Address().Street, cmd.Address().PostalCode, cmd.Address().City)
	if err != nil {
		return nil, err
	}

	inputs := cmd.Items()
	items := make([]*order.Item, 0, len(inputs))
	for _, in := range inputs {
		product, err := restaurant.NewProductReference(in.ProductID, in.Price)
		if err != nil {
			return nil, err
		}
		item, err := order.NewItem(product, in.Quantity, in.Price, in.SubTotal)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return order.NewOrder(cmd.CustomerID(), cmd.RestaurantID(), address, cmd.Price(), items)
}

// saveError keeps optimistic-lock conflicts distinguishable so callers can retry.
func saveError(err error) error {
	if errors.Is(err, errs.ErrVersionIsInvalid) {
		return err
	}
	return errs.NewDomainErrorWithCause("could not save order", err)
}
