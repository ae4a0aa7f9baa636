package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okravets/storefront/internal/models"
	"github.com/okravets/storefront/internal/transport"
)

func validReviewRequest() transport.ReviewRequest {
	return transport.ReviewRequest{
		Rating:  5,
		Title:   "great keyboard",
		Content: "types well",
	}
}

func TestReviewService_Create(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := initTestDB(t)
	s := &ReviewService{Repo: r}
	product := seedProduct(t, r, "keyboard", "100.00")

	review, err := s.CreateReview(ctx, 1, product.ID, validReviewRequest())
	require.NoError(t, err)
	assert.True(t, review.IsActive)
	assert.Equal(t, uint(1), review.AuthorID)

	_, err = s.CreateReview(ctx, 1, 999, validReviewRequest())
	assert.ErrorIs(t, err, ErrNotFound)

	req := validReviewRequest()
	req.Rating = 6
	_, err = s.CreateReview(ctx, 2, product.ID, req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReviewService_OneReviewPerProduct(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := initTestDB(t)
	s := &ReviewService{Repo: r}
	product := seedProduct(t, r, "keyboard", "100.00")

	_, err := s.CreateReview(ctx, 1, product.ID, validReviewRequest())
	require.NoError(t, err)

	_, err = s.CreateReview(ctx, 1, product.ID, validReviewRequest())
	assert.ErrorIs(t, err, ErrConflict)

	// A different user can still review the same product.
	_, err = s.CreateReview(ctx, 2, product.ID, validReviewRequest())
	require.NoError(t, err)
}

func TestReviewService_AuthorOrAdminOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := initTestDB(t)
	s := &ReviewService{Repo: r}
	product := seedProduct(t, r, "keyboard", "100.00")

	review, err := s.CreateReview(ctx, 1, product.ID, validReviewRequest())
	require.NoError(t, err)

	req := validReviewRequest()
	req.Rating = 3

	_, err = s.UpdateReview(ctx, 2, models.RoleUser, review.ID, req)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := s.UpdateReview(ctx, 1, models.RoleUser, review.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Rating)

	_, err = s.UpdateReview(ctx, 2, models.RoleAdmin, review.ID, req)
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteReview(ctx, 2, models.RoleUser, review.ID), ErrForbidden)
	require.NoError(t, s.DeleteReview(ctx, 2, models.RoleAdmin, review.ID))
	assert.ErrorIs(t, s.DeleteReview(ctx, 1, models.RoleUser, review.ID), ErrNotFound)
}

func TestReviewService_MarkHelpful(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := initTestDB(t)
	s := &ReviewService{Repo: r}
	product := seedProduct(t, r, "keyboard", "100.00")

	review, err := s.CreateReview(ctx, 1, product.ID, validReviewRequest())
	require.NoError(t, err)

	require.NoError(t, s.MarkHelpful(ctx, review.ID))
	require.NoError(t, s.MarkHelpful(ctx, review.ID))

	got, err := r.GetReview(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.HelpfulCount)

	assert.ErrorIs(t, s.MarkHelpful(ctx, 999), ErrNotFound)
}

func TestReviewService_ListWithStats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := initTestDB(t)
	s := &ReviewService{Repo: r}
	product := seedProduct(t, r, "keyboard", "100.00")

	ratings := []int{5, 4, 4}
	for i, rating := range ratings {
		req := validReviewRequest()
		req.Rating = rating
		_, err := s.CreateReview(ctx, uint(i+1), product.ID, req)
		require.NoError(t, err)
	}

	result, err := s.ListProductReviews(ctx, product.ID)
	require.NoError(t, err)

	assert.Len(t, result.Reviews, 3)
	require.NotNil(t, result.Stats)
	assert.Equal(t, int64(3), result.Stats.Count)
	assert.InDelta(t, 4.33, result.Stats.Average, 0.01)
	assert.Equal(t, int64(2), result.Stats.Distribution[4])
	assert.Equal(t, int64(1), result.Stats.Distribution[5])
}
