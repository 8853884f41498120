package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResponse, error)
}

type TrackOrderHandler interface {
	Handle(ctx context.Context, query queries.TrackOrderQuery) (queries.TrackOrderQueryResponse, error)
}

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler CreateOrderHandler
	trackOrderHandler  TrackOrderHandler
	logger             *slog.Logger
}

func NewServer(
	createOrderHandler CreateOrderHandler,
	trackOrderHandler TrackOrderHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler: createOrderHandler,
		trackOrderHandler:  trackOrderHandler,
		logger:             logger.With("component", "HTTPServer"),
	}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req servers.CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := newCreateOrderCommand(req)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	resp, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.CreateOrderResponse{
		OrderTrackingId: resp.TrackingID.Bytes(),
		OrderStatus:     servers.OrderStatus(resp.Status.String()),
		Message:         resp.Message,
	})
}

// TrackOrder handles GET /api/v1/orders/{trackingId}.
func (s *Server) TrackOrder(ctx echo.Context, trackingID openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(trackingID[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid tracking id: " + err.Error(),
		})
	}

	query, err := queries.NewTrackOrderQuery(order.NewTrackingID(id))
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	resp, err := s.trackOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	failureMessages := resp.FailureMessages
	if failureMessages == nil {
		failureMessages = []string{}
	}

	return ctx.JSON(http.StatusOK, servers.TrackOrderResponse{
		OrderTrackingId: resp.TrackingID.Bytes(),
		OrderStatus:     servers.OrderStatus(resp.Status.String()),
		FailureMessages: failureMessages,
	})
}

func newCreateOrderCommand(req servers.CreateOrderRequest) (commands.CreateOrderCommand, error) {
	customerID, customerErr := kernel.UUIDFromBytes(req.CustomerId[:])
	restaurantID, restaurantErr := kernel.UUIDFromBytes(req.RestaurantId[:])
	price, priceErr := kernel.NewMoney(req.Price)

	items := make([]commands.OrderItemInput, 0, len(req.Items))
	itemErrs := make([]error, 0, len(req.Items))
	for _, item := range req.Items {
		productID, productErr := kernel.UUIDFromBytes(item.ProductId[:])
		itemPrice, itemPriceErr := kernel.NewMoney(item.Price)
		subTotal, subTotalErr := kernel.NewMoney(item.SubTotal)
		if err := errors.Join(productErr, itemPriceErr, subTotalErr); err != nil {
			itemErrs = append(itemErrs, err)
			continue
		}

		items = append(items, commands.OrderItemInput{
			ProductID: kernel.NewProductID(productID),
			Quantity:  item.Quantity,
			Price:     itemPrice,
			SubTotal:  subTotal,
		})
	}

	if err := errors.Join(append([]error{customerErr, restaurantErr, priceErr}, itemErrs...)...); err != nil {
		return commands.CreateOrderCommand{}, err
	}

	return commands.NewCreateOrderCommand(
		kernel.NewCustomerID(customerID),
		kernel.NewRestaurantID(restaurantID),
		price,
		items,
		commands.AddressInput{
			Street:     req.Address.Street,
			PostalCode: req.Address.PostalCode,
			City:       req.Address.City,
		},
	)
}
