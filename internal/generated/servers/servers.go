// Package servers provides primitives to interact with the openapi HTTP API.
package servers

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Defines values for OrderStatus.
const (
	APPROVED   OrderStatus = "APPROVED"
	CANCELLED  OrderStatus = "CANCELLED"
	CANCELLING OrderStatus = "CANCELLING"
	PAID       OrderStatus = "PAID"
	PENDING    OrderStatus = "PENDING"
)

// Address defines model for Address.
type Address struct {
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Street     string `json:"street"`
}

// CreateOrderRequest defines model for CreateOrderRequest.
type CreateOrderRequest struct {
	Address      Address            `json:"address"`
	CustomerId   openapi_types.UUID `json:"customerId"`
	Items        []OrderItem        `json:"items"`
	Price        decimal.Decimal    `json:"price"`
	RestaurantId openapi_types.UUID `json:"restaurantId"`
}

// CreateOrderResponse defines model for CreateOrderResponse.
type CreateOrderResponse struct {
	Message         string             `json:"message"`
	OrderStatus     OrderStatus        `json:"orderStatus"`
	OrderTrackingId openapi_types.UUID `json:"orderTrackingId"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderItem defines model for OrderItem.
type OrderItem struct {
	Price     decimal.Decimal    `json:"price"`
	ProductId openapi_types.UUID `json:"productId"`
	Quantity  int                `json:"quantity"`
	SubTotal  decimal.Decimal    `json:"subTotal"`
}

// OrderStatus defines model for OrderStatus.
type OrderStatus string

// TrackOrderResponse defines model for TrackOrderResponse.
type TrackOrderResponse struct {
	FailureMessages []string           `json:"failureMessages"`
	OrderStatus     OrderStatus        `json:"orderStatus"`
	OrderTrackingId openapi_types.UUID `json:"orderTrackingId"`
}

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = CreateOrderRequest

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Place a new order
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// Report the status of an order
	// (GET /api/v1/orders/{trackingId})
	TrackOrder(ctx echo.Context, trackingId openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// TrackOrder converts echo context to params.
func (w *ServerInterfaceWrapper) TrackOrder(ctx echo.Context) error {
	var trackingId openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", "trackingId", ctx.Param("trackingId"), &trackingId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter trackingId: %s", err))
	}

	return w.Handler.TrackOrder(ctx, trackingId)
}

// EchoRouter is the subset of *echo.Echo and *echo.Group the handlers are
// registered with.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the handlers under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/:trackingId", wrapper.TrackOrder)
}

//go:embed openapi.yaml
var swaggerSpec []byte

// GetSwagger returns the OpenAPI document the server implements.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(swaggerSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading OpenAPI document: %w", err)
	}
	return swagger, nil
}
