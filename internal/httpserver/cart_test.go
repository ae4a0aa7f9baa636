package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/okravets/storefront/internal/models"
	"github.com/okravets/storefront/internal/repo"
	"github.com/okravets/storefront/internal/service"
	"github.com/okravets/storefront/internal/session"
)

func initTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.Discount{},
		&models.PromoCode{},
		&models.PromoCodeUsage{},
		&models.SessionEntry{},
	))
	return &repo.GormRepo{DB: db}
}

func newJSONContext(e *echo.Echo, method, target string, payload any) (echo.Context, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("sessionID", "test-session")
	return c, rec
}

func seedTestProduct(t *testing.T, r *repo.GormRepo, price string) *models.Product {
	t.Helper()

	p := models.Product{
		Name:        "keyboard",
		Slug:        "keyboard",
		Description: "mechanical",
		Price:       decimal.RequireFromString(price),
		IsAvailable: true,
	}
	require.NoError(t, r.DB.Create(&p).Error)
	return &p
}

func TestAddToCart(t *testing.T) {
	r := initTestRepo(t)
	product := seedTestProduct(t, r, "100.00")
	h := CartHTTP{Svc: &service.CartService{Repo: r, Sessions: session.NewMemoryStore()}}

	e := echo.New()
	c, rec := newJSONContext(e, http.MethodPost, "/cart", map[string]any{
		"product_id": product.ID,
		"quantity":   2,
	})

	require.NoError(t, h.AddToCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var view service.CartView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Items, 1)
	require.Equal(t, 2, view.Items[0].Quantity)
	require.Equal(t, "200", view.CartTotal.String())
}

func TestAddToCart_DefaultsQuantityToOne(t *testing.T) {
	r := initTestRepo(t)
	product := seedTestProduct(t, r, "100.00")
	h := CartHTTP{Svc: &service.CartService{Repo: r, Sessions: session.NewMemoryStore()}}

	e := echo.New()
	c, rec := newJSONContext(e, http.MethodPost, "/cart", map[string]any{
		"product_id": product.ID,
	})

	require.NoError(t, h.AddToCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var view service.CartView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Items, 1)
	require.Equal(t, 1, view.Items[0].Quantity)
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	r := initTestRepo(t)
	h := CartHTTP{Svc: &service.CartService{Repo: r, Sessions: session.NewMemoryStore()}}

	e := echo.New()
	c, rec := newJSONContext(e, http.MethodPost, "/cart", map[string]any{
		"product_id": 999,
		"quantity":   1,
	})

	require.NoError(t, h.AddToCart(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddToCart_MissingProductID(t *testing.T) {
	r := initTestRepo(t)
	h := CartHTTP{Svc: &service.CartService{Repo: r, Sessions: session.NewMemoryStore()}}

	e := echo.New()
	c, rec := newJSONContext(e, http.MethodPost, "/cart", map[string]any{
		"quantity": 1,
	})

	require.NoError(t, h.AddToCart(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveFromCart(t *testing.T) {
	r := initTestRepo(t)
	product := seedTestProduct(t, r, "100.00")
	svc := &service.CartService{Repo: r, Sessions: session.NewMemoryStore()}
	h := CartHTTP{Svc: svc}

	e := echo.New()
	c, _ := newJSONContext(e, http.MethodPost, "/cart", map[string]any{
		"product_id": product.ID,
		"quantity":   1,
	})
	require.NoError(t, h.AddToCart(c))

	req := httptest.NewRequest(http.MethodDelete, "/cart/1", nil)
	rec := httptest.NewRecorder()
	cDel := e.NewContext(req, rec)
	cDel.Set("sessionID", "test-session")
	cDel.SetParamNames("id")
	cDel.SetParamValues("1")

	require.NoError(t, h.RemoveFromCart(cDel))
	require.Equal(t, http.StatusNoContent, rec.Code)

	cGet, recGet := newJSONContext(e, http.MethodGet, "/cart", nil)
	require.NoError(t, h.GetCart(cGet))

	var view service.CartView
	require.NoError(t, json.Unmarshal(recGet.Body.Bytes(), &view))
	require.Empty(t, view.Items)
}

func TestSessionMiddleware_IssuesCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := SessionMiddleware(func(c echo.Context) error {
		require.NotEmpty(t, SessionID(c))
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "sid", cookies[0].Name)
	require.NotEmpty(t, cookies[0].Value)
	require.True(t, cookies[0].HttpOnly)
}

func TestSessionMiddleware_KeepsExistingCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "existing"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := SessionMiddleware(func(c echo.Context) error {
		require.Equal(t, "existing", SessionID(c))
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	require.Empty(t, rec.Result().Cookies())
}
