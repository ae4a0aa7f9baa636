package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/okravets/storefront/internal/logging"
	"github.com/okravets/storefront/internal/service"
	"github.com/okravets/storefront/internal/transport"
)

type DiscountHTTP struct {
	Svc *service.DiscountService
}

func (h *DiscountHTTP) ProductDiscounts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "discount.list")

	productID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	view, err := h.Svc.ProductDiscounts(ctx, productID)
	if err != nil {
		return respondError(c, l, "product_discounts_error", err)
	}

	return c.JSON(http.StatusOK, view)
}

func (h *DiscountHTTP) CreateDiscount(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "discount.create")

	productID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req transport.DiscountRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_discount_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	d, err := h.Svc.CreateDiscount(ctx, productID, req)
	if err != nil {
		return respondError(c, l, "create_discount_error", err)
	}

	l.Info("create_discount_success", "discount_id", d.ID)
	return c.JSON(http.StatusCreated, d)
}

func (h *DiscountHTTP) UpdateDiscount(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "discount.update")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req transport.DiscountRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_discount_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	d, err := h.Svc.UpdateDiscount(ctx, id, req)
	if err != nil {
		return respondError(c, l, "update_discount_error", err)
	}

	l.Info("update_discount_success", "discount_id", d.ID)
	return c.JSON(http.StatusOK, d)
}

func (h *DiscountHTTP) DeleteDiscount(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "discount.delete")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteDiscount(ctx, id); err != nil {
		return respondError(c, l, "delete_discount_error", err)
	}

	l.Info("delete_discount_success", "discount_id", id)
	return c.NoContent(http.StatusNoContent)
}
