package service

import (
	"context"
	"fmt"

	"cakeshop/internal/model"
	"cakeshop/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	repo   repository.ProductRepository
	logger zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		repo:   repo,
		logger: logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves products matching the filter plus the unpaginated total.
func (s *productService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, int64, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}
	return products, total, nil
}

// GetByID retrieves a product or fails with a not-found error.
func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if p == nil {
		return nil, model.NewNotFoundError("product not found")
	}
	return p, nil
}

func (s *productService) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if p == nil {
		return nil, model.NewNotFoundError("product not found")
	}
	return p, nil
}

func (s *productService) GetBySKU(ctx context.Context, sku string) (*model.Product, error) {
	p, err := s.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if p == nil {
		return nil, model.NewNotFoundError("product not found")
	}
	return p, nil
}

// Create validates the payload and inserts the product. A missing slug is
// derived from the name; SKU and slug uniqueness is pre-checked for a
// friendly message, with the database constraint as the final arbiter.
func (s *productService) Create(ctx context.Context, payload model.ProductCreate) (*model.Product, error) {
	if payload.Name == "" {
		return nil, model.NewValidationError("product name is required")
	}
	if payload.SKU == "" {
		return nil, model.NewValidationError("product SKU is required")
	}
	if payload.Price < 0 {
		return nil, model.NewValidationError("product price cannot be negative")
	}
	if payload.StockQuantity < 0 {
		return nil, model.NewValidationError("stock quantity cannot be negative")
	}

	if payload.Slug == "" {
		payload.Slug = Slugify(payload.Name)
	}
	if payload.Status == "" {
		payload.Status = model.ProductStatusActive
	}
	if payload.Status != model.ProductStatusActive && payload.Status != model.ProductStatusInactive {
		return nil, model.NewValidationError("invalid product status")
	}

	existing, err := s.repo.GetBySKU(ctx, payload.SKU)
	if err != nil {
		return nil, fmt.Errorf("failed to check SKU: %w", err)
	}
	if existing != nil {
		return nil, model.NewConflictError("product SKU already exists")
	}

	existing, err = s.repo.GetBySlug(ctx, payload.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if existing != nil {
		return nil, model.NewConflictError("product slug already exists")
	}

	p, err := s.repo.Create(ctx, payload)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("product_id", p.ID).Str("sku", p.SKU).Msg("product created")
	return p, nil
}

// Update writes only the supplied fields.
func (s *productService) Update(ctx context.Context, id int64, payload model.ProductUpdate) (*model.Product, error) {
	if payload.Status != nil &&
		*payload.Status != model.ProductStatusActive && *payload.Status != model.ProductStatusInactive {
		return nil, model.NewValidationError("invalid product status")
	}
	if payload.Price != nil && *payload.Price < 0 {
		return nil, model.NewValidationError("product price cannot be negative")
	}

	p, err := s.repo.Update(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, model.NewNotFoundError("product not found")
	}
	return p, nil
}

// Delete removes a product or fails with a not-found error.
func (s *productService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return model.NewNotFoundError("product not found")
	}
	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}

func (s *productService) Featured(ctx context.Context, limit int) ([]model.Product, error) {
	return s.repo.Featured(ctx, limit)
}

func (s *productService) Bestsellers(ctx context.Context, limit int) ([]model.Product, error) {
	return s.repo.Bestsellers(ctx, limit)
}
