package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/okravets/storefront/internal/logging"
	"github.com/okravets/storefront/internal/middleware/auth"
	"github.com/okravets/storefront/internal/service"
	"github.com/okravets/storefront/internal/transport"
)

type PromoHTTP struct {
	Svc *service.PromoService
}

func (h *PromoHTTP) CreatePromoCode(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "promo.create")

	userID, ok := auth.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.PromoCodeRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_promo_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	promo, err := h.Svc.CreatePromoCode(ctx, req, userID)
	if err != nil {
		return respondError(c, l, "create_promo_error", err)
	}

	l.Info("create_promo_success", "promo_id", promo.ID)
	return c.JSON(http.StatusCreated, promo)
}

func (h *PromoHTTP) ListPromoCodes(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "promo.list")

	promos, err := h.Svc.ListPromoCodes(ctx, c.QueryParam("status"), c.QueryParam("q"))
	if err != nil {
		return respondError(c, l, "list_promo_error", err)
	}

	return c.JSON(http.StatusOK, promos)
}

func (h *PromoHTTP) PromoCodeStats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "promo.stats")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	stats, err := h.Svc.PromoCodeStats(ctx, id)
	if err != nil {
		return respondError(c, l, "promo_stats_error", err)
	}

	return c.JSON(http.StatusOK, stats)
}

func (h *PromoHTTP) ApplyPromoCode(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "promo.apply")

	var req transport.ApplyPromoRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("apply_promo_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	result, err := h.Svc.ApplyPromoCode(ctx, SessionID(c), req.PromoCode)
	if err != nil {
		return respondError(c, l, "apply_promo_error", err)
	}

	l.Info("apply_promo_success", "code", result.Code)
	return c.JSON(http.StatusOK, result)
}

func (h *PromoHTTP) RemovePromoCode(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "promo.remove")

	if err := h.Svc.RemovePromoCode(ctx, SessionID(c)); err != nil {
		return respondError(c, l, "remove_promo_error", err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
