package repo

import (
	"context"
	"math"

	"gorm.io/gorm"

	"github.com/okravets/storefront/internal/models"
)

type RatingStats struct {
	Average      float64       `json:"average"`
	Count        int64         `json:"count"`
	Distribution map[int]int64 `json:"distribution"`
}

func (r *GormRepo) GetReview(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.DB.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *GormRepo) GetProductReviews(ctx context.Context, productID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.DB.WithContext(ctx).
		Where("product_id = ? AND is_active = ?", productID, true).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *GormRepo) ReviewExists(ctx context.Context, productID, authorID uint) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Review{}).
		Where("product_id = ? AND author_id = ?", productID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) CreateReview(ctx context.Context, review *models.Review) error {
	return r.DB.WithContext(ctx).Create(review).Error
}

func (r *GormRepo) SaveReview(ctx context.Context, review *models.Review) error {
	return r.DB.WithContext(ctx).Save(review).Error
}

func (r *GormRepo) DeleteReview(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Review{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkReviewHelpful bumps the helpful counter in place.
func (r *GormRepo) MarkReviewHelpful(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Model(&models.Review{}).
		Where("id = ?", id).
		UpdateColumn("helpful_count", gorm.Expr("helpful_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) GetRatingStats(ctx context.Context, productID uint) (*RatingStats, error) {
	stats := &RatingStats{Distribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}

	var rows []struct {
		Rating int
		C      int64
	}
	if err := r.DB.WithContext(ctx).Model(&models.Review{}).
		Where("product_id = ? AND is_active = ?", productID, true).
		Select("rating, COUNT(*) as c").
		Group("rating").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	var sum int64
	for _, row := range rows {
		stats.Distribution[row.Rating] = row.C
		stats.Count += row.C
		sum += int64(row.Rating) * row.C
	}
	if stats.Count > 0 {
		stats.Average = math.Round(float64(sum)/float64(stats.Count)*100) / 100
	}
	return stats, nil
}
