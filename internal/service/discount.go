package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/okravets/storefront/internal/models"
	"github.com/okravets/storefront/internal/repo"
	"github.com/okravets/storefront/internal/transport"
)

type DiscountService struct {
	Repo *repo.GormRepo
}

// ProductDiscountView is the per-product discount summary: the valid
// discounts, the one yielding the lowest net price, and that price.
type ProductDiscountView struct {
	Product         *models.Product   `json:"product"`
	Discounts       []models.Discount `json:"discounts"`
	BestDiscount    *models.Discount  `json:"best_discount"`
	DiscountedPrice *decimal.Decimal  `json:"discounted_price"`
}

func (s *DiscountService) ProductDiscounts(ctx context.Context, productID uint) (*ProductDiscountView, error) {
	product, err := s.Repo.GetProduct(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	all, err := s.Repo.GetProductDiscounts(ctx, productID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	valid := make([]models.Discount, 0, len(all))
	for _, d := range all {
		if d.Valid(now) {
			valid = append(valid, d)
		}
	}

	view := &ProductDiscountView{Product: product, Discounts: valid}
	if best := models.BestDiscount(valid, product.Price, now); best != nil {
		view.BestDiscount = best
		price := best.DiscountedPrice(product.Price, 1, now)
		view.DiscountedPrice = &price
	}
	return view, nil
}

func validateDiscount(req transport.DiscountRequest) (start, end time.Time, errs FieldErrors) {
	errs = FieldErrors{}

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
	case models.DiscountTypePercentage:
		if req.Value.LessThanOrEqual(decimal.Zero) || req.Value.GreaterThan(decimal.NewFromInt(100)) {
			errs["value"] = "percentage must be in (0, 100]"
		}
	case models.DiscountTypeFixed:
		if req.Value.LessThanOrEqual(decimal.Zero) {
			errs["value"] = "fixed amount must be > 0"
		}
	default:
		errs["discount_type"] = "must be percentage or fixed"
	}

	if req.MinQuantity < 1 {
		errs["min_quantity"] = "must be at least 1"
	}

	return start, end, errs
}

func (s *DiscountService) CreateDiscount(ctx context.Context, productID uint, req transport.DiscountRequest) (*models.Discount, error) {
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return nil, err
	}

	start, end, errs := validateDiscount(req)
	if len(errs) > 0 {
		return nil, errs
	}

	d := models.Discount{
		ProductID:    productID,
		DiscountType: req.DiscountType,
		Value:        req.Value,
		StartDate:    start,
		EndDate:      end,
		IsActive:     req.IsActive,
		MinQuantity:  req.MinQuantity,
		Description:  req.Description,
	}
	if err := s.Repo.CreateDiscount(ctx, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *DiscountService) UpdateDiscount(ctx context.Context, id uint, req transport.DiscountRequest) (*models.Discount, error) {
	d, err := s.Repo.GetDiscount(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("discount %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	start, end, errs := validateDiscount(req)
	if len(errs) > 0 {
		return nil, errs
	}

	d.DiscountType = req.DiscountType
	d.Value = req.Value
	d.StartDate = start
	d.EndDate = end
	d.IsActive = req.IsActive
	d.MinQuantity = req.MinQuantity
	d.Description = req.Description

	if err := s.Repo.SaveDiscount(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DiscountService) DeleteDiscount(ctx context.Context, id uint) error {
	err := s.Repo.DeleteDiscount(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("discount %d: %w", id, ErrNotFound)
	}
	return err
}
