package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/okravets/storefront/internal/logging"
	"github.com/okravets/storefront/internal/service"
	"github.com/okravets/storefront/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	view, err := h.Svc.View(ctx, SessionID(c))
	if err != nil {
		return respondError(c, l, "get_cart_error", err)
	}

	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}
	if req.Quantity == 0 && !req.Override {
		req.Quantity = 1
	}

	if err := h.Svc.Add(ctx, SessionID(c), req.ProductID, req.Quantity, req.Override); err != nil {
		return respondError(c, l, "add_to_cart_error", err)
	}

	view, err := h.Svc.View(ctx, SessionID(c))
	if err != nil {
		return respondError(c, l, "add_to_cart_error", err)
	}

	l.Info("add_to_cart_success", "product_id", req.ProductID)
	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	productID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.Remove(ctx, SessionID(c), productID); err != nil {
		return respondError(c, l, "remove_from_cart_error", err)
	}

	l.Info("remove_from_cart_success", "product_id", productID)
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	if err := h.Svc.Clear(ctx, SessionID(c)); err != nil {
		return respondError(c, l, "clear_cart_error", err)
	}

	l.Info("cart successfully cleared")
	return c.JSON(http.StatusOK, "cart successfully cleared")
}
