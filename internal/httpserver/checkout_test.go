package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/okravets/storefront/internal/models"
	"github.com/okravets/storefront/internal/service"
	"github.com/okravets/storefront/internal/session"
)

func newBuyNowContext(e *echo.Echo, productID uint, quantity string) (echo.Context, *httptest.ResponseRecorder) {
	form := url.Values{}
	if quantity != "" {
		form.Set("quantity", quantity)
	}
	req := httptest.NewRequest(http.MethodPost, "/checkout/buy-now/1", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("sessionID", "test-session")
	c.Set("userID", uint(1))
	c.SetParamNames("product_id")
	c.SetParamValues(strconv.FormatUint(uint64(productID), 10))
	return c, rec
}

func TestBuyNow(t *testing.T) {
	r := initTestRepo(t)
	product := seedTestProduct(t, r, "100.00")
	h := CheckoutHTTP{Svc: &service.CheckoutService{Repo: r, Sessions: session.NewMemoryStore()}}

	e := echo.New()
	c, rec := newBuyNowContext(e, product.ID, "3")

	require.NoError(t, h.BuyNow(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	require.Equal(t, models.OrderStatusPaid, order.Status)
	require.Equal(t, 3, order.Quantity)
	require.Equal(t, "300", order.FinalPrice.String())
}

func TestBuyNow_UnparsableQuantityFallsBackToOne(t *testing.T) {
	r := initTestRepo(t)
	product := seedTestProduct(t, r, "100.00")
	h := CheckoutHTTP{Svc: &service.CheckoutService{Repo: r, Sessions: session.NewMemoryStore()}}

	e := echo.New()
	for _, quantity := range []string{"", "abc", "1.5"} {
		c, rec := newBuyNowContext(e, product.ID, quantity)

		require.NoError(t, h.BuyNow(c))
		require.Equal(t, http.StatusCreated, rec.Code)

		var order models.Order
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
		require.Equal(t, 1, order.Quantity)
	}
}

func TestBuyNow_UnknownProduct(t *testing.T) {
	r := initTestRepo(t)
	h := CheckoutHTTP{Svc: &service.CheckoutService{Repo: r, Sessions: session.NewMemoryStore()}}

	e := echo.New()
	c, rec := newBuyNowContext(e, 999, "1")

	require.NoError(t, h.BuyNow(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBuyNow_Unauthorized(t *testing.T) {
	r := initTestRepo(t)
	h := CheckoutHTTP{Svc: &service.CheckoutService{Repo: r, Sessions: session.NewMemoryStore()}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/checkout/buy-now/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("product_id")
	c.SetParamValues("1")

	require.NoError(t, h.BuyNow(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListOrders(t *testing.T) {
	r := initTestRepo(t)
	product := seedTestProduct(t, r, "50.00")
	svc := &service.CheckoutService{Repo: r, Sessions: session.NewMemoryStore()}
	h := CheckoutHTTP{Svc: svc}

	e := echo.New()
	for i := 0; i < 2; i++ {
		c, rec := newBuyNowContext(e, product.ID, "1")
		require.NoError(t, h.BuyNow(c))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("userID", uint(1))

	require.NoError(t, h.ListOrders(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 2)
}
