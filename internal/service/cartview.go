package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/okravets/storefront/internal/cart"
	"github.com/okravets/storefront/internal/models"
	"github.com/okravets/storefront/internal/repo"
	"github.com/okravets/storefront/internal/session"
)

type CartService struct {
	Repo     *repo.GormRepo
	Sessions session.Store
}

func (s *CartService) cart(sessionID string) *cart.Cart {
	return cart.New(s.Sessions, s.Repo, sessionID)
}

func (s *CartService) Add(ctx context.Context, sessionID string, productID uint, quantity int, override bool) error {
	if productID == 0 {
		return fmt.Errorf("product_id required: %w", ErrValidation)
	}
	err := s.cart(sessionID).Add(ctx, productID, quantity, override)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}
	return err
}

func (s *CartService) Remove(ctx context.Context, sessionID string, productID uint) error {
	return s.cart(sessionID).Remove(ctx, productID)
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.cart(sessionID).Clear(ctx)
}

// CartView is the rendered cart state: line items, the raw total, and
// the final total after the session's promo code (when still valid).
type CartView struct {
	Items         []cart.Line     `json:"items"`
	CartTotal     decimal.Decimal `json:"cart_total"`
	PromoCode     string          `json:"promo_code,omitempty"`
	PromoDiscount decimal.Decimal `json:"promo_discount"`
	FinalTotal    decimal.Decimal `json:"final_total"`
}

// View resolves the session's cart and promo code. A promo code that
// is gone or no longer contributes a discount is detached silently and
// the totals revert to full price.
func (s *CartService) View(ctx context.Context, sessionID string) (*CartView, error) {
	c := s.cart(sessionID)

	items, err := c.Items(ctx)
	if err != nil {
		return nil, err
	}

	total, err := c.Total(ctx)
	if err != nil {
		return nil, err
	}

	view := &CartView{
		Items:         items,
		CartTotal:     total,
		PromoDiscount: decimal.Zero,
		FinalTotal:    total,
	}

	code, err := c.PromoCode(ctx)
	if err != nil {
		return nil, err
	}
	if code == "" {
		return view, nil
	}

	promo, err := s.Repo.GetPromoCodeByCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := c.ClearPromoCode(ctx); err != nil {
			return nil, err
		}
		return view, nil
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	discount := promo.ApplyDiscount(total, now)
	keepFreeShipping := promo.DiscountType == models.PromoTypeFreeShipping &&
		promo.Valid(now) && !total.LessThan(promo.MinOrderAmount)

	if discount.GreaterThan(decimal.Zero) || keepFreeShipping {
		view.PromoCode = promo.Code
		view.PromoDiscount = discount
		final := total.Sub(discount)
		if final.IsNegative() {
			final = decimal.Zero
		}
		view.FinalTotal = final
		return view, nil
	}

	if err := c.ClearPromoCode(ctx); err != nil {
		return nil, err
	}
	return view, nil
}
