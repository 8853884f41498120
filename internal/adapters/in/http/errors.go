package http

import (
	"errors"
	"net/http"

	"ordering/internal/generated/servers"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf checks ErrDomain before ErrObjectNotFound: a missing customer or
// restaurant is a rejected order, not a missing resource.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrDomain):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse hides the details of unexpected failures from the client.
func (s *Server) errorResponse(ctx echo.Context, err error) error {
	status := statusOf(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		message = http.StatusText(status)
	}

	return ctx.JSON(status, servers.Error{
		Code:    status,
		Message: message,
	})
}
