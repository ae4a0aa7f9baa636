package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"gorm.io/gorm"

	"github.com/okravets/storefront/internal/logging"
	"github.com/okravets/storefront/internal/models"
	"github.com/okravets/storefront/internal/repo"
	"github.com/okravets/storefront/internal/service/search"
	"github.com/okravets/storefront/internal/transport"
)

type CatalogService struct {
	Repo   *repo.GormRepo
	Events Events
	ES     *elasticsearch.Client
}

func (s *CatalogService) publish(ctx context.Context, event map[string]any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishEvent(ctx, "product_events", fmt.Sprint(event["productID"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}

func (s *CatalogService) indexProduct(ctx context.Context, product *models.Product) {
	if s.ES == nil {
		return
	}
	if err := search.IndexProduct(ctx, s.ES, search.ProductIndex, product); err != nil {
		logging.FromContext(ctx).Error("es index error", "product_id", product.ID, "error", err)
	}
}

func (s *CatalogService) deindexProduct(ctx context.Context, id uint) {
	if s.ES == nil {
		return
	}
	if err := search.DeleteProduct(ctx, s.ES, search.ProductIndex, id); err != nil {
		logging.FromContext(ctx).Error("es delete error", "product_id", id, "error", err)
	}
}

// GetProduct returns the product after bumping its view counter.
func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	if err := s.Repo.IncrementProductViews(ctx, id); err != nil {
		return nil, err
	}

	product, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return product, err
}

func (s *CatalogService) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, offset, limit)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, FieldErrors{"name": "required"}
	}
	if req.Slug == "" {
		return nil, FieldErrors{"slug": "required"}
	}
	if req.Price.IsNegative() {
		return nil, FieldErrors{"price": "must be >= 0"}
	}

	prod := models.Product{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       req.Price,
		Featured:    req.Featured,
		IsAvailable: req.IsAvailable,
	}
	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		return nil, err
	}

	s.publish(ctx, map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	s.indexProduct(ctx, &prod)
	return &prod, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uint) (*models.Product, error) {
	if req.Price != nil && req.Price.IsNegative() {
		return nil, FieldErrors{"price": "must be >= 0"}
	}

	prod, err := s.Repo.PatchProduct(ctx, req, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	s.indexProduct(ctx, prod)
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	err := s.Repo.DeleteProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return err
	}

	s.publish(ctx, map[string]any{
		"type":      "product_deleted",
		"productID": strconv.FormatUint(uint64(id), 10),
	})
	s.deindexProduct(ctx, id)
	return nil
}
