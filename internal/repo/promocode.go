package repo

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/okravets/storefront/internal/models"
)

func (r *GormRepo) GetPromoCode(ctx context.Context, id uint) (*models.PromoCode, error) {
	var promo models.PromoCode
	if err := r.DB.WithContext(ctx).First(&promo, id).Error; err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *GormRepo) GetPromoCodeByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	var promo models.PromoCode
	if err := r.DB.WithContext(ctx).Where("code = ?", code).First(&promo).Error; err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *GormRepo) GetPromoCodes(ctx context.Context) ([]models.PromoCode, error) {
	var promos []models.PromoCode
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&promos).Error; err != nil {
		return nil, err
	}
	return promos, nil
}

func (r *GormRepo) CreatePromoCode(ctx context.Context, promo *models.PromoCode) error {
	return r.DB.WithContext(ctx).Create(promo).Error
}

// IncrementPromoUsage consumes one use of the code with a single
// in-place update guarded by the usage limit, so concurrent checkouts
// cannot overshoot it. Returns gorm.ErrRecordNotFound when the limit is
// already exhausted.
func (r *GormRepo) IncrementPromoUsage(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Model(&models.PromoCode{}).
		Where("id = ? AND (usage_limit IS NULL OR used_count < usage_limit)", id).
		UpdateColumn("used_count", gorm.Expr("used_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) CreatePromoCodeUsage(ctx context.Context, usage *models.PromoCodeUsage) error {
	return r.DB.WithContext(ctx).Create(usage).Error
}

func (r *GormRepo) GetPromoCodeUsages(ctx context.Context, promoID uint) ([]models.PromoCodeUsage, error) {
	var usages []models.PromoCodeUsage
	if err := r.DB.WithContext(ctx).
		Where("promo_code_id = ?", promoID).
		Order("used_at DESC").
		Find(&usages).Error; err != nil {
		return nil, err
	}
	return usages, nil
}

func (r *GormRepo) TotalPromoDiscount(ctx context.Context, promoID uint) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.DB.WithContext(ctx).Model(&models.PromoCodeUsage{}).
		Where("promo_code_id = ?", promoID).
		Select("SUM(discount_amount)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
