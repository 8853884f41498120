package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"ordering/internal/generated/servers"
	"ordering/internal/pkg/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/labstack/echo/v4"
)

// RequestMetrics records every request with its matched route and logs it.
func RequestMetrics(m *metrics.Metrics, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := c.Response().Status
			elapsed := time.Since(start)

			m.ObserveHTTPRequest(c.Request().Method, route, status, elapsed)
			logger.InfoContext(c.Request().Context(), "request handled",
				"method", c.Request().Method,
				"route", route,
				"status", status,
				"durationMs", elapsed.Milliseconds(),
			)
			return nil
		}
	}
}

// OpenAPIValidator checks parameters and bodies of documented routes against the
// OpenAPI document. Routes the document does not describe pass through.
func OpenAPIValidator(swagger *openapi3.T) echo.MiddlewareFunc {
	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			item := swagger.Paths.Find(openAPIPath(c.Path()))
			if item == nil {
				return next(c)
			}
			operation := item.GetOperation(c.Request().Method)
			if operation == nil {
				return next(c)
			}

			pathParams := make(map[string]string, len(c.ParamNames()))
			for i, name := range c.ParamNames() {
				pathParams[name] = c.ParamValues()[i]
			}

			ctx := c.Request().Context()
			input := &openapi3filter.RequestValidationInput{
				Request:    c.Request(),
				PathParams: pathParams,
				Options:    options,
			}

			for _, param := range operation.Parameters {
				if err := openapi3filter.ValidateParameter(ctx, input, param.Value); err != nil {
					return invalidRequest(c, err)
				}
			}

			if operation.RequestBody != nil {
				if err := openapi3filter.ValidateRequestBody(ctx, input, operation.RequestBody.Value); err != nil {
					return invalidRequest(c, err)
				}
			}

			return next(c)
		}
	}
}

// openAPIPath turns an echo route ("/orders/:id") into its OpenAPI form ("/orders/{id}").
func openAPIPath(route string) string {
	segments := strings.Split(route, "/")
	for i, segment := range segments {
		if strings.HasPrefix(segment, ":") {
			segments[i] = "{" + segment[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

func invalidRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: "Invalid request: " + firstLine(err.Error()),
	})
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
