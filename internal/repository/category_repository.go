package repository

import (
	"context"
	"fmt"
	"strings"

	"cakeshop/internal/model"
	"cakeshop/internal/query"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

var categoryQueryDef = query.Definition{
	SearchColumns: []string{"c.name", "c.description"},
	SortColumns: map[string]string{
		"name":       "c.name",
		"sort_order": "c.sort_order",
		"created_at": "c.created_at",
	},
	DefaultSortBy: "sort_order",
	DefaultOrder:  "ASC",
}

// Category reads carry the count of active products; the same join backs the
// product_count column and the featured/parents/children helpers.
const categorySelect = `
	SELECT c.id, c.name, c.slug, c.description, c.image, c.parent_id,
	       c.sort_order, c.is_featured, c.status, c.created_at, c.updated_at,
	       COUNT(p.id) AS product_count
	FROM categories c
	LEFT JOIN products p ON c.id = p.category_id AND p.status = 'active'
`

const categoryGroup = " GROUP BY c.id"

// categoryRepository implements CategoryRepository using PostgreSQL.
type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

func scanCategory(row pgx.Row) (*model.Category, error) {
	var c model.Category
	err := row.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.Image, &c.ParentID,
		&c.SortOrder, &c.IsFeatured, &c.Status, &c.CreatedAt, &c.UpdatedAt,
		&c.ProductCount,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func categoryConditions(qb *query.Builder, filter model.CategoryFilter) {
	if filter.Status != nil {
		qb.Equal("c.status", *filter.Status)
	}
	if filter.ParentID.Set {
		if filter.ParentID.Null {
			qb.IsNull("c.parent_id")
		} else {
			qb.Equal("c.parent_id", filter.ParentID.ID)
		}
	}
	if filter.IsFeatured != nil {
		qb.Equal("c.is_featured", *filter.IsFeatured)
	}
	qb.Search(filter.Search, categoryQueryDef.SearchColumns...)
}

// List retrieves categories matching the filter with their product counts.
func (r *categoryRepository) List(ctx context.Context, filter model.CategoryFilter) ([]model.Category, error) {
	qb := query.NewBuilder()
	categoryConditions(qb, filter)

	sql := categorySelect + qb.Where() + categoryGroup +
		categoryQueryDef.OrderBy(filter.SortBy, filter.SortOrder) +
		qb.Pagination(filter.Limit, filter.Offset)

	return r.queryMany(ctx, sql, qb.Args()...)
}

// Count returns the number of categories matching the filter.
func (r *categoryRepository) Count(ctx context.Context, filter model.CategoryFilter) (int64, error) {
	qb := query.NewBuilder()
	categoryConditions(qb, filter)

	sql := "SELECT COUNT(*) FROM categories c" + qb.Where()

	var total int64
	if err := r.pool.QueryRow(ctx, sql, qb.Args()...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count categories")
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return total, nil
}

// GetByID retrieves a category by ID, or nil when it does not exist.
func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	return r.getOne(ctx, "c.id = $1", id)
}

// GetBySlug retrieves a category by slug.
func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return r.getOne(ctx, "c.slug = $1", slug)
}

func (r *categoryRepository) getOne(ctx context.Context, cond string, arg any) (*model.Category, error) {
	sql := categorySelect + " WHERE " + cond + categoryGroup

	c, err := scanCategory(r.pool.QueryRow(ctx, sql, arg))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	return c, nil
}

// Create inserts a category and returns it with its generated ID.
func (r *categoryRepository) Create(ctx context.Context, payload model.CategoryCreate) (*model.Category, error) {
	sql := `
		INSERT INTO categories (name, slug, description, image, parent_id, sort_order, is_featured, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, sql,
		payload.Name, payload.Slug, payload.Description, payload.Image,
		payload.ParentID, payload.SortOrder, payload.IsFeatured, payload.Status,
	).Scan(&id)
	if err != nil {
		r.logger.Error().Err(err).Str("slug", payload.Slug).Msg("failed to create category")
		return nil, translateError(err, "category slug already exists")
	}

	r.logger.Debug().Int64("category_id", id).Msg("category created")
	return r.GetByID(ctx, id)
}

// Update writes only the non-nil fields of the payload.
func (r *categoryRepository) Update(ctx context.Context, id int64, payload model.CategoryUpdate) (*model.Category, error) {
	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if payload.Name != nil {
		add("name", *payload.Name)
	}
	if payload.Slug != nil {
		add("slug", *payload.Slug)
	}
	if payload.Description != nil {
		add("description", *payload.Description)
	}
	if payload.Image != nil {
		add("image", *payload.Image)
	}
	if payload.ParentID != nil {
		add("parent_id", *payload.ParentID)
	}
	if payload.SortOrder != nil {
		add("sort_order", *payload.SortOrder)
	}
	if payload.IsFeatured != nil {
		add("is_featured", *payload.IsFeatured)
	}
	if payload.Status != nil {
		add("status", *payload.Status)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)
	sql := fmt.Sprintf("UPDATE categories SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to update category")
		return nil, translateError(err, "category slug already exists")
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, id)
}

// Delete removes a category unless it still owns products. The guard is an
// application-level check, not a database cascade.
func (r *categoryRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var productCount int64
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM products WHERE category_id = $1", id).Scan(&productCount)
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to check category products")
		return false, fmt.Errorf("failed to check category products: %w", err)
	}
	if productCount > 0 {
		r.logger.Warn().Int64("category_id", id).Int64("products", productCount).Msg("category delete blocked")
		return false, model.NewConflictError("cannot delete category that has products")
	}

	tag, err := r.pool.Exec(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to delete category")
		return false, fmt.Errorf("failed to delete category: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Featured retrieves up to limit active featured categories by sort order.
func (r *categoryRepository) Featured(ctx context.Context, limit int) ([]model.Category, error) {
	sql := categorySelect +
		" WHERE c.is_featured = TRUE AND c.status = 'active'" +
		categoryGroup + " ORDER BY c.sort_order ASC LIMIT $1"
	return r.queryMany(ctx, sql, limit)
}

// Parents retrieves active root categories by sort order.
func (r *categoryRepository) Parents(ctx context.Context) ([]model.Category, error) {
	sql := categorySelect +
		" WHERE c.parent_id IS NULL AND c.status = 'active'" +
		categoryGroup + " ORDER BY c.sort_order ASC"
	return r.queryMany(ctx, sql)
}

// Children retrieves the active children of a parent by sort order.
func (r *categoryRepository) Children(ctx context.Context, parentID int64) ([]model.Category, error) {
	sql := categorySelect +
		" WHERE c.parent_id = $1 AND c.status = 'active'" +
		categoryGroup + " ORDER BY c.sort_order ASC"
	return r.queryMany(ctx, sql, parentID)
}

func (r *categoryRepository) queryMany(ctx context.Context, sql string, args ...any) ([]model.Category, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	// non-nil so an empty page encodes as [] on the wire
	categories := make([]model.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}
