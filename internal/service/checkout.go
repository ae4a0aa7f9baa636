package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/okravets/storefront/internal/cart"
	"github.com/okravets/storefront/internal/logging"
	"github.com/okravets/storefront/internal/models"
	"github.com/okravets/storefront/internal/repo"
	"github.com/okravets/storefront/internal/session"
)

// CheckoutService finalizes a buy-now purchase: it computes the totals,
// records the order, consumes the session's promo code and publishes an
// order event. Every successful checkout is treated as paid.
type CheckoutService struct {
	Repo     *repo.GormRepo
	Sessions session.Store
	Events   Events
}

// BuyNow purchases quantity units of one product. A non-positive
// quantity is coerced to 1. The promo code slot of the session is
// consumed whether or not it contributed a discount; a code that no
// longer exists downgrades the purchase to full price silently.
func (s *CheckoutService) BuyNow(ctx context.Context, userID, productID uint, quantity int) (*models.Order, error) {
	return s.buyNow(ctx, userID, productID, quantity, "")
}

// BuyNowWithSession is BuyNow plus promo-code resolution from the
// given browsing session.
func (s *CheckoutService) BuyNowWithSession(ctx context.Context, userID, productID uint, quantity int, sessionID string) (*models.Order, error) {
	return s.buyNow(ctx, userID, productID, quantity, sessionID)
}

func (s *CheckoutService) buyNow(ctx context.Context, userID, productID uint, quantity int, sessionID string) (*models.Order, error) {
	l := logging.FromContext(ctx)

	if quantity < 1 {
		quantity = 1
	}

	product, err := s.Repo.GetProduct(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	total := product.Price.Mul(decimal.NewFromInt(int64(quantity)))

	var (
		code           string
		promo          *models.PromoCode
		discountAmount = decimal.Zero
	)

	if sessionID != "" {
		c := cart.New(s.Sessions, s.Repo, sessionID)
		code, err = c.PromoCode(ctx)
		if err != nil {
			return nil, err
		}
	}

	if code != "" {
		promo, err = s.Repo.GetPromoCodeByCode(ctx, code)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Code vanished between apply and redeem: full price.
			promo = nil
			err = nil
		}
		if err != nil {
			return nil, err
		}
		if promo != nil {
			discountAmount = promo.ApplyDiscount(total, time.Now().UTC())
		}
	}

	final := total.Sub(discountAmount)
	if final.IsNegative() {
		final = decimal.Zero
	}

	order := models.Order{
		UserID:         userID,
		ProductID:      productID,
		Quantity:       quantity,
		TotalPrice:     total,
		DiscountAmount: discountAmount,
		FinalPrice:     final,
		PromoCode:      code,
		Status:         models.OrderStatusPaid,
	}
	if err := s.Repo.CreateOrder(ctx, &order); err != nil {
		return nil, err
	}

	if promo != nil && discountAmount.GreaterThan(decimal.Zero) {
		usage := models.PromoCodeUsage{
			PromoCodeID:    promo.ID,
			UserID:         userID,
			OrderAmount:    total,
			DiscountAmount: discountAmount,
		}
		if err := s.Repo.CreatePromoCodeUsage(ctx, &usage); err != nil {
			return nil, err
		}
		if err := s.Repo.IncrementPromoUsage(ctx, promo.ID); err != nil &&
			!errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	// One-shot consumption: the slot is cleared even when the code
	// contributed nothing.
	if sessionID != "" {
		c := cart.New(s.Sessions, s.Repo, sessionID)
		if err := c.ClearPromoCode(ctx); err != nil {
			return nil, err
		}
	}

	if s.Events != nil {
		event := map[string]any{
			"type":        "order_created",
			"orderID":     order.ID,
			"userID":      userID,
			"productID":   productID,
			"final_price": order.FinalPrice,
		}
		if err := s.Events.PublishEvent(ctx, "order_events", fmt.Sprint(userID), event); err != nil {
			l.Error("kafka publish error", "error", err)
		}
	}

	return &order, nil
}

func (s *CheckoutService) ListOrders(ctx context.Context, userID uint, offset, limit int) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, userID, offset, limit)
}

// GetOrder returns one order. Only the buyer or an admin may read it.
func (s *CheckoutService) GetOrder(ctx context.Context, userID uint, role string, id uint) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if order.UserID != userID && role != models.RoleAdmin {
		return nil, fmt.Errorf("not the buyer: %w", ErrForbidden)
	}
	return order, nil
}
