package service

import (
	"context"
	"fmt"

	"cakeshop/internal/model"
	"cakeshop/internal/repository"

	"github.com/rs/zerolog"
)

// categoryService implements CategoryService.
type categoryService struct {
	repo   repository.CategoryRepository
	logger zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo repository.CategoryRepository, logger zerolog.Logger) CategoryService {
	return &categoryService{
		repo:   repo,
		logger: logger.With().Str("service", "category").Logger(),
	}
}

func (s *categoryService) List(ctx context.Context, filter model.CategoryFilter) ([]model.Category, int64, error) {
	categories, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return categories, total, nil
}

func (s *categoryService) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if c == nil {
		return nil, model.NewNotFoundError("category not found")
	}
	return c, nil
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	c, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if c == nil {
		return nil, model.NewNotFoundError("category not found")
	}
	return c, nil
}

// Create validates the payload and inserts the category, deriving a slug
// from the name when none is supplied.
func (s *categoryService) Create(ctx context.Context, payload model.CategoryCreate) (*model.Category, error) {
	if payload.Name == "" {
		return nil, model.NewValidationError("category name is required")
	}
	if payload.Slug == "" {
		payload.Slug = Slugify(payload.Name)
	}
	if payload.Status == "" {
		payload.Status = "active"
	}

	existing, err := s.repo.GetBySlug(ctx, payload.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if existing != nil {
		return nil, model.NewConflictError("category slug already exists")
	}

	c, err := s.repo.Create(ctx, payload)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("category_id", c.ID).Str("slug", c.Slug).Msg("category created")
	return c, nil
}

func (s *categoryService) Update(ctx context.Context, id int64, payload model.CategoryUpdate) (*model.Category, error) {
	c, err := s.repo.Update(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, model.NewNotFoundError("category not found")
	}
	return c, nil
}

// Delete removes a category. The repository's referential guard rejects the
// delete with a conflict while the category still has products.
func (s *categoryService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return model.NewNotFoundError("category not found")
	}
	s.logger.Info().Int64("category_id", id).Msg("category deleted")
	return nil
}

func (s *categoryService) Featured(ctx context.Context, limit int) ([]model.Category, error) {
	return s.repo.Featured(ctx, limit)
}

func (s *categoryService) Parents(ctx context.Context) ([]model.Category, error) {
	return s.repo.Parents(ctx)
}

func (s *categoryService) Children(ctx context.Context, parentID int64) ([]model.Category, error) {
	return s.repo.Children(ctx, parentID)
}
