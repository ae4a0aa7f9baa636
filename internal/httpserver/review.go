package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/okravets/storefront/internal/logging"
	"github.com/okravets/storefront/internal/middleware/auth"
	"github.com/okravets/storefront/internal/service"
	"github.com/okravets/storefront/internal/transport"
)

type ReviewHTTP struct {
	Svc *service.ReviewService
}

func (h *ReviewHTTP) CreateReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.create")

	userID, ok := auth.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	productID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req transport.ReviewRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_review_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	review, err := h.Svc.CreateReview(ctx, userID, productID, req)
	if err != nil {
		return respondError(c, l, "create_review_error", err)
	}

	l.Info("create_review_success", "review_id", review.ID)
	return c.JSON(http.StatusCreated, review)
}

func (h *ReviewHTTP) UpdateReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.update")

	userID, ok := auth.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req transport.ReviewRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_review_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	review, err := h.Svc.UpdateReview(ctx, userID, auth.Role(c), id, req)
	if err != nil {
		return respondError(c, l, "update_review_error", err)
	}

	return c.JSON(http.StatusOK, review)
}

func (h *ReviewHTTP) DeleteReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.delete")

	userID, ok := auth.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteReview(ctx, userID, auth.Role(c), id); err != nil {
		return respondError(c, l, "delete_review_error", err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ReviewHTTP) MarkHelpful(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.helpful")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.MarkHelpful(ctx, id); err != nil {
		return respondError(c, l, "mark_helpful_error", err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *ReviewHTTP) ListProductReviews(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.list")

	productID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	reviews, err := h.Svc.ListProductReviews(ctx, productID)
	if err != nil {
		return respondError(c, l, "list_reviews_error", err)
	}

	return c.JSON(http.StatusOK, reviews)
}
