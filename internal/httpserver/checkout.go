package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/okravets/storefront/internal/logging"
	"github.com/okravets/storefront/internal/middleware/auth"
	"github.com/okravets/storefront/internal/service"
	"github.com/okravets/storefront/internal/util"
)

type CheckoutHTTP struct {
	Svc *service.CheckoutService
}

// BuyNow finalizes a one-product purchase. The quantity comes in as a
// form value and is coerced to 1 when missing or unparsable.
func (h *CheckoutHTTP) BuyNow(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.buy_now")

	userID, ok := auth.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	productID, err := parseID(c, "product_id")
	if err != nil {
		return err
	}

	quantity := util.ParseIntDefault(c.FormValue("quantity"), 1)

	order, err := h.Svc.BuyNowWithSession(ctx, userID, productID, quantity, SessionID(c))
	if err != nil {
		return respondError(c, l, "buy_now_error", err)
	}

	l.Info("buy_now_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, order)
}

func (h *CheckoutHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.order")

	userID, ok := auth.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.Svc.GetOrder(ctx, userID, auth.Role(c), id)
	if err != nil {
		return respondError(c, l, "get_order_error", err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *CheckoutHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.orders")

	userID, ok := auth.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	orders, err := h.Svc.ListOrders(ctx, userID, offset, limit)
	if err != nil {
		return respondError(c, l, "list_orders_error", err)
	}

	return c.JSON(http.StatusOK, orders)
}
