package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/okravets/storefront/internal/models"
)

func (r *GormRepo) GetDiscount(ctx context.Context, id uint) (*models.Discount, error) {
	var d models.Discount
	if err := r.DB.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *GormRepo) GetProductDiscounts(ctx context.Context, productID uint) ([]models.Discount, error) {
	var discounts []models.Discount
	if err := r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&discounts).Error; err != nil {
		return nil, err
	}
	return discounts, nil
}

func (r *GormRepo) CreateDiscount(ctx context.Context, d *models.Discount) error {
	return r.DB.WithContext(ctx).Create(d).Error
}

func (r *GormRepo) SaveDiscount(ctx context.Context, d *models.Discount) error {
	return r.DB.WithContext(ctx).Save(d).Error
}

func (r *GormRepo) DeleteDiscount(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Discount{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
