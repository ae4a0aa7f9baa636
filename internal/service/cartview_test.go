package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okravets/storefront/internal/cart"
	"github.com/okravets/storefront/internal/models"
	"github.com/okravets/storefront/internal/session"
)

func TestCartService_AddAndView(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := initTestDB(t)
	s := &CartService{Repo: r, Sessions: session.NewMemoryStore()}

	keyboard := seedProduct(t, r, "keyboard", "100.00")
	mouse := seedProduct(t, r, "mouse", "25.50")

	require.NoError(t, s.Add(ctx, "sid-1", keyboard.ID, 1, false))
	require.NoError(t, s.Add(ctx, "sid-1", mouse.ID, 2, false))

	view, err := s.View(ctx, "sid-1")
	require.NoError(t, err)

	require.Len(t, view.Items, 2)
	assert.Equal(t, "151", view.CartTotal.String())
	assert.Equal(t, "151", view.FinalTotal.String())
	assert.Empty(t, view.PromoCode)
}

func TestCartService_AddValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := initTestDB(t)
	s := &CartService{Repo: r, Sessions: session.NewMemoryStore()}

	err := s.Add(ctx, "sid-1", 0, 1, false)
	assert.ErrorIs(t, err, ErrValidation)

	err = s.Add(ctx, "sid-1", 999, 1, false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartService_ViewWithPromo(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := initTestDB(t)
	store := session.NewMemoryStore()
	s := &CartService{Repo: r, Sessions: store}

	product := seedProduct(t, r, "keyboard", "100.00")
	seedPromo(t, r, models.PromoCode{
		Code:         "SAVE10",
		DiscountType: models.PromoTypePercentage,
		Value:        dec("10"),
		IsActive:     true,
	})

	require.NoError(t, s.Add(ctx, "sid-1", product.ID, 2, false))
	require.NoError(t, cart.New(store, r, "sid-1").SetPromoCode(ctx, "SAVE10"))

	view, err := s.View(ctx, "sid-1")
	require.NoError(t, err)

	assert.Equal(t, "SAVE10", view.PromoCode)
	assert.Equal(t, "200", view.CartTotal.String())
	assert.Equal(t, "20", view.PromoDiscount.String())
	assert.Equal(t, "180", view.FinalTotal.String())
}

func TestCartService_ViewDetachesExpiredPromo(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := initTestDB(t)
	store := session.NewMemoryStore()
	s := &CartService{Repo: r, Sessions: store}

	product := seedProduct(t, r, "keyboard", "100.00")
	seedPromo(t, r, models.PromoCode{
		Code:         "OLD2024",
		DiscountType: models.PromoTypePercentage,
		Value:        dec("10"),
		StartDate:    time.Now().Add(-48 * time.Hour),
		EndDate:      time.Now().Add(-24 * time.Hour),
		IsActive:     true,
	})

	require.NoError(t, s.Add(ctx, "sid-1", product.ID, 1, false))
	require.NoError(t, cart.New(store, r, "sid-1").SetPromoCode(ctx, "OLD2024"))

	view, err := s.View(ctx, "sid-1")
	require.NoError(t, err)

	assert.Empty(t, view.PromoCode)
	assert.True(t, view.PromoDiscount.IsZero())
	assert.Equal(t, "100", view.FinalTotal.String())

	code, err := cart.New(store, r, "sid-1").PromoCode(ctx)
	require.NoError(t, err)
	assert.Empty(t, code, "expired code is detached from the session")
}

func TestCartService_ViewDetachesDeletedPromo(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := initTestDB(t)
	store := session.NewMemoryStore()
	s := &CartService{Repo: r, Sessions: store}

	product := seedProduct(t, r, "keyboard", "100.00")

	require.NoError(t, s.Add(ctx, "sid-1", product.ID, 1, false))
	require.NoError(t, cart.New(store, r, "sid-1").SetPromoCode(ctx, "GONE42"))

	view, err := s.View(ctx, "sid-1")
	require.NoError(t, err)

	assert.Empty(t, view.PromoCode)
	assert.Equal(t, "100", view.FinalTotal.String())

	code, err := cart.New(store, r, "sid-1").PromoCode(ctx)
	require.NoError(t, err)
	assert.Empty(t, code)
}

func TestCartService_ViewKeepsFreeShipping(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := initTestDB(t)
	store := session.NewMemoryStore()
	s := &CartService{Repo: r, Sessions: store}

	product := seedProduct(t, r, "keyboard", "100.00")
	seedPromo(t, r, models.PromoCode{
		Code:           "SHIPFREE",
		DiscountType:   models.PromoTypeFreeShipping,
		Value:          dec("0"),
		MinOrderAmount: dec("50"),
		IsActive:       true,
	})

	require.NoError(t, s.Add(ctx, "sid-1", product.ID, 1, false))
	require.NoError(t, cart.New(store, r, "sid-1").SetPromoCode(ctx, "SHIPFREE"))

	view, err := s.View(ctx, "sid-1")
	require.NoError(t, err)

	assert.Equal(t, "SHIPFREE", view.PromoCode, "free shipping stays attached")
	assert.True(t, view.PromoDiscount.IsZero())
	assert.Equal(t, "100", view.FinalTotal.String())
}

func TestCartService_RemoveAndClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := initTestDB(t)
	s := &CartService{Repo: r, Sessions: session.NewMemoryStore()}

	product := seedProduct(t, r, "keyboard", "100.00")

	require.NoError(t, s.Add(ctx, "sid-1", product.ID, 2, false))
	require.NoError(t, s.Remove(ctx, "sid-1", product.ID))
	require.NoError(t, s.Remove(ctx, "sid-1", product.ID))

	view, err := s.View(ctx, "sid-1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	require.NoError(t, s.Add(ctx, "sid-1", product.ID, 1, false))
	require.NoError(t, s.Clear(ctx, "sid-1"))

	view, err = s.View(ctx, "sid-1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.CartTotal.IsZero())
}
