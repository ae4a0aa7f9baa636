package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/okravets/storefront/internal/cart"
	"github.com/okravets/storefront/internal/models"
	"github.com/okravets/storefront/internal/repo"
	"github.com/okravets/storefront/internal/session"
	"github.com/okravets/storefront/internal/transport"
)

type PromoService struct {
	Repo     *repo.GormRepo
	Sessions session.Store
}

func validatePromoCode(req transport.PromoCodeRequest) (code string, start, end time.Time, errs FieldErrors) {
	errs = FieldErrors{}

	code = models.NormalizePromoCode(req.Code)
	if len(code) < 4 {
		errs["code"] = "must be at least 4 characters without spaces"
	}

	var err error
	start, err = time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		errs["start_date"] = "must be an RFC3339 timestamp"
	}
	end, err = time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		errs["end_date"] = "must be an RFC3339 timestamp"
	} else if !start.IsZero() && !end.After(start) {
		errs["end_date"] = "must be after start_date"
	}

	switch req.DiscountType {
	case models.PromoTypePercentage:
		if req.Value.LessThanOrEqual(decimal.Zero) || req.Value.GreaterThan(decimal.NewFromInt(100)) {
			errs["value"] = "percentage must be in (0, 100]"
		}
	case models.PromoTypeFixed:
		if req.Value.LessThanOrEqual(decimal.Zero) {
			errs["value"] = "fixed amount must be > 0"
		}
	case models.PromoTypeFreeShipping:
	default:
		errs["discount_type"] = "must be percentage, fixed or free_shipping"
	}

	if req.UsageLimit != nil && *req.UsageLimit <= 0 {
		errs["usage_limit"] = "must be > 0 or empty"
	}
	if req.MinOrderAmount.IsNegative() {
		errs["min_order_amount"] = "must be >= 0"
	}

	return code, start, end, errs
}

func (s *PromoService) CreatePromoCode(ctx context.Context, req transport.PromoCodeRequest, createdBy uint) (*models.PromoCode, error) {
	code, start, end, errs := validatePromoCode(req)
	if len(errs) > 0 {
		return nil, errs
	}

	promo := models.PromoCode{
		Code:           code,
		DiscountType:   req.DiscountType,
		Value:          req.Value,
		StartDate:      start,
		EndDate:        end,
		UsageLimit:     req.UsageLimit,
		MinOrderAmount: req.MinOrderAmount,
		IsActive:       req.IsActive,
		Description:    req.Description,
		CreatedByID:    &createdBy,
	}
	if err := s.Repo.CreatePromoCode(ctx, &promo); err != nil {
		return nil, err
	}
	return &promo, nil
}

// ListPromoCodes filters by validity status ("active"/"inactive") and a
// code substring, both optional.
func (s *PromoService) ListPromoCodes(ctx context.Context, status, search string) ([]models.PromoCode, error) {
	promos, err := s.Repo.GetPromoCodes(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	search = strings.ToUpper(search)

	filtered := make([]models.PromoCode, 0, len(promos))
	for _, p := range promos {
		switch status {
		case "active":
			if !p.Valid(now) {
				continue
			}
		case "inactive":
			if p.Valid(now) {
				continue
			}
		}
		if search != "" && !strings.Contains(p.Code, search) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

type PromoStats struct {
	Promo         *models.PromoCode       `json:"promo"`
	Usages        []models.PromoCodeUsage `json:"usages"`
	TotalDiscount decimal.Decimal         `json:"total_discount"`
}

func (s *PromoService) PromoCodeStats(ctx context.Context, id uint) (*PromoStats, error) {
	promo, err := s.Repo.GetPromoCode(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("promo code %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	usages, err := s.Repo.GetPromoCodeUsages(ctx, id)
	if err != nil {
		return nil, err
	}

	total, err := s.Repo.TotalPromoDiscount(ctx, id)
	if err != nil {
		return nil, err
	}

	return &PromoStats{Promo: promo, Usages: usages, TotalDiscount: total}, nil
}

type ApplyResult struct {
	Code     string          `json:"code"`
	Discount decimal.Decimal `json:"discount"`
	NewTotal decimal.Decimal `json:"new_total"`
}

// ApplyPromoCode validates the code against the session's cart total
// and, when it contributes a discount, attaches it to the session.
func (s *PromoService) ApplyPromoCode(ctx context.Context, sessionID, rawCode string) (*ApplyResult, error) {
	code := models.NormalizePromoCode(rawCode)
	if len(code) < 4 {
		return nil, FieldErrors{"promo_code": "must be at least 4 characters without spaces"}
	}

	promo, err := s.Repo.GetPromoCodeByCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("promo code %s: %w", code, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if !promo.Valid(now) {
		return nil, FieldErrors{"promo_code": "not active or expired"}
	}

	c := cart.New(s.Sessions, s.Repo, sessionID)
	total, err := c.Total(ctx)
	if err != nil {
		return nil, err
	}

	discount := promo.ApplyDiscount(total, now)
	if promo.DiscountType == models.PromoTypeFreeShipping {
		// Free shipping discounts nothing here but still attaches.
		if total.LessThan(promo.MinOrderAmount) {
			return nil, FieldErrors{"promo_code": "cannot be applied to this order amount"}
		}
	} else if discount.LessThanOrEqual(decimal.Zero) {
		return nil, FieldErrors{"promo_code": "cannot be applied to this order amount"}
	}

	if err := c.SetPromoCode(ctx, promo.Code); err != nil {
		return nil, err
	}

	return &ApplyResult{
		Code:     promo.Code,
		Discount: discount,
		NewTotal: total.Sub(discount),
	}, nil
}

func (s *PromoService) RemovePromoCode(ctx context.Context, sessionID string) error {
	c := cart.New(s.Sessions, s.Repo, sessionID)
	return c.ClearPromoCode(ctx)
}
