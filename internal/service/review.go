package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/okravets/storefront/internal/models"
	"github.com/okravets/storefront/internal/repo"
	"github.com/okravets/storefront/internal/transport"
)

type ReviewService struct {
	Repo *repo.GormRepo
}

func validateReview(req transport.ReviewRequest) FieldErrors {
	errs := FieldErrors{}
	if req.Rating < 1 || req.Rating > 5 {
		errs["rating"] = "must be between 1 and 5"
	}
	if req.Title == "" {
		errs["title"] = "required"
	}
	if req.Content == "" {
		errs["content"] = "required"
	}
	return errs
}

func (s *ReviewService) CreateReview(ctx context.Context, authorID, productID uint, req transport.ReviewRequest) (*models.Review, error) {
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return nil, err
	}

	if errs := validateReview(req); len(errs) > 0 {
		return nil, errs
	}

	exists, err := s.Repo.ReviewExists(ctx, productID, authorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("one review per product: %w", ErrConflict)
	}

	review := models.Review{
		ProductID:     productID,
		AuthorID:      authorID,
		Rating:        req.Rating,
		Title:         req.Title,
		Content:       req.Content,
		Advantages:    req.Advantages,
		Disadvantages: req.Disadvantages,
		IsActive:      true,
	}
	if err := s.Repo.CreateReview(ctx, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *ReviewService) UpdateReview(ctx context.Context, userID uint, role string, id uint, req transport.ReviewRequest) (*models.Review, error) {
	review, err := s.Repo.GetReview(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("review %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if review.AuthorID != userID && role != models.RoleAdmin {
		return nil, fmt.Errorf("not the author: %w", ErrForbidden)
	}

	if errs := validateReview(req); len(errs) > 0 {
		return nil, errs
	}

	review.Rating = req.Rating
	review.Title = req.Title
	review.Content = req.Content
	review.Advantages = req.Advantages
	review.Disadvantages = req.Disadvantages

	if err := s.Repo.SaveReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, userID uint, role string, id uint) error {
	review, err := s.Repo.GetReview(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("review %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return err
	}

	if review.AuthorID != userID && role != models.RoleAdmin {
		return fmt.Errorf("not the author: %w", ErrForbidden)
	}

	return s.Repo.DeleteReview(ctx, id)
}

func (s *ReviewService) MarkHelpful(ctx context.Context, id uint) error {
	err := s.Repo.MarkReviewHelpful(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("review %d: %w", id, ErrNotFound)
	}
	return err
}

type ProductReviews struct {
	Reviews []models.Review   `json:"reviews"`
	Stats   *repo.RatingStats `json:"stats"`
}

func (s *ReviewService) ListProductReviews(ctx context.Context, productID uint) (*ProductReviews, error) {
	reviews, err := s.Repo.GetProductReviews(ctx, productID)
	if err != nil {
		return nil, err
	}

	stats, err := s.Repo.GetRatingStats(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &ProductReviews{Reviews: reviews, Stats: stats}, nil
}
