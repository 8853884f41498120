package http

import (
	"log/slog"
	"net/http"

	// registers the swagger document served by echo-swagger
	_ "ordering/internal/generated/docs"
	"ordering/internal/generated/servers"
	"ordering/internal/pkg/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter wires the API, health, metrics and swagger routes.
func NewRouter(
	server *Server,
	swagger *openapi3.T,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(RequestMetrics(m, logger.With("component", "HTTPRequests")))
	e.Use(OpenAPIValidator(swagger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(gatherer)))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, server)

	return e
}
