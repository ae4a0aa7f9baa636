package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/okravets/storefront/internal/service"
)

// respondError maps service sentinel errors to HTTP statuses the way
// the rest of the handlers expect them.
func respondError(c echo.Context, l *slog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warn(op, "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		l.Warn(op, "status", 404, "error", err)
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		l.Warn(op, "status", 403, "error", err)
		return c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		l.Warn(op, "status", 409, "error", err)
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		l.Error(op, "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
