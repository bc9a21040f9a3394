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

// productQueryDef restricts which columns product listings may search and
// sort on.
var productQueryDef = query.Definition{
	SearchColumns: []string{"p.name", "p.description"},
	SortColumns: map[string]string{
		"name":           "p.name",
		"price":          "p.price",
		"stock_quantity": "p.stock_quantity",
		"created_at":     "p.created_at",
		"updated_at":     "p.updated_at",
	},
	DefaultSortBy: "created_at",
	DefaultOrder:  "DESC",
}

const productColumns = `
	p.id, p.name, p.slug, p.description, p.short_description, p.sku,
	p.price, p.sale_price, p.stock_quantity, p.category_id,
	p.is_featured, p.is_bestseller, p.status, p.created_at, p.updated_at,
	c.name AS category_name
`

const productFrom = `
	FROM products p
	LEFT JOIN categories c ON p.category_id = c.id
`

// productRepository implements ProductRepository using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.ShortDescription, &p.SKU,
		&p.Price, &p.SalePrice, &p.StockQuantity, &p.CategoryID,
		&p.IsFeatured, &p.IsBestseller, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		&p.CategoryName,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// productConditions applies the filter's predicate to a builder. List and
// Count share it so pagination is the only difference between them.
func productConditions(qb *query.Builder, filter model.ProductFilter) {
	if filter.CategoryID != nil {
		qb.Equal("p.category_id", *filter.CategoryID)
	}
	if filter.Status != nil {
		qb.Equal("p.status", *filter.Status)
	}
	if filter.IsFeatured != nil {
		qb.Equal("p.is_featured", *filter.IsFeatured)
	}
	if filter.IsBestseller != nil {
		qb.Equal("p.is_bestseller", *filter.IsBestseller)
	}
	qb.Search(filter.Search, productQueryDef.SearchColumns...)
}

// List retrieves products matching the filter.
func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	qb := query.NewBuilder()
	productConditions(qb, filter)

	sql := "SELECT " + productColumns + productFrom + qb.Where() +
		productQueryDef.OrderBy(filter.SortBy, filter.SortOrder) +
		qb.Pagination(filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, sql, qb.Args()...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	// non-nil so an empty page encodes as [] on the wire
	products := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Count returns the number of products matching the filter.
func (r *productRepository) Count(ctx context.Context, filter model.ProductFilter) (int64, error) {
	qb := query.NewBuilder()
	productConditions(qb, filter)

	sql := "SELECT COUNT(*)" + productFrom + qb.Where()

	var total int64
	if err := r.pool.QueryRow(ctx, sql, qb.Args()...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

// GetByID retrieves a product by ID, or nil when it does not exist.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	return r.getOne(ctx, "p.id = $1", id)
}

// GetBySKU retrieves a product by SKU.
func (r *productRepository) GetBySKU(ctx context.Context, sku string) (*model.Product, error) {
	return r.getOne(ctx, "p.sku = $1", sku)
}

// GetBySlug retrieves a product by slug.
func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return r.getOne(ctx, "p.slug = $1", slug)
}

func (r *productRepository) getOne(ctx context.Context, cond string, arg any) (*model.Product, error) {
	sql := "SELECT " + productColumns + productFrom + " WHERE " + cond

	p, err := scanProduct(r.pool.QueryRow(ctx, sql, arg))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return p, nil
}

// Create inserts a product and returns it with its generated ID and joined
// category name.
func (r *productRepository) Create(ctx context.Context, payload model.ProductCreate) (*model.Product, error) {
	sql := `
		INSERT INTO products (
			name, slug, description, short_description, sku, price, sale_price,
			stock_quantity, category_id, is_featured, is_bestseller, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, sql,
		payload.Name, payload.Slug, payload.Description, payload.ShortDescription,
		payload.SKU, payload.Price, payload.SalePrice, payload.StockQuantity,
		payload.CategoryID, payload.IsFeatured, payload.IsBestseller, payload.Status,
	).Scan(&id)
	if err != nil {
		r.logger.Error().Err(err).Str("sku", payload.SKU).Msg("failed to create product")
		return nil, translateError(err, "product SKU or slug already exists")
	}

	r.logger.Debug().Int64("product_id", id).Msg("product created")
	return r.GetByID(ctx, id)
}

// Update writes only the non-nil fields of the payload.
func (r *productRepository) Update(ctx context.Context, id int64, payload model.ProductUpdate) (*model.Product, error) {
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
	if payload.ShortDescription != nil {
		add("short_description", *payload.ShortDescription)
	}
	if payload.SKU != nil {
		add("sku", *payload.SKU)
	}
	if payload.Price != nil {
		add("price", *payload.Price)
	}
	if payload.SalePrice != nil {
		add("sale_price", *payload.SalePrice)
	}
	if payload.StockQuantity != nil {
		add("stock_quantity", *payload.StockQuantity)
	}
	if payload.CategoryID != nil {
		add("category_id", *payload.CategoryID)
	}
	if payload.IsFeatured != nil {
		add("is_featured", *payload.IsFeatured)
	}
	if payload.IsBestseller != nil {
		add("is_bestseller", *payload.IsBestseller)
	}
	if payload.Status != nil {
		add("status", *payload.Status)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)
	sql := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return nil, translateError(err, "product SKU or slug already exists")
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, id)
}

// Delete removes a product, reporting whether it existed.
func (r *productRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Featured retrieves up to limit active featured products, newest first.
func (r *productRepository) Featured(ctx context.Context, limit int) ([]model.Product, error) {
	return r.listFlagged(ctx, "p.is_featured", limit)
}

// Bestsellers retrieves up to limit active bestseller products, newest first.
func (r *productRepository) Bestsellers(ctx context.Context, limit int) ([]model.Product, error) {
	return r.listFlagged(ctx, "p.is_bestseller", limit)
}

func (r *productRepository) listFlagged(ctx context.Context, flag string, limit int) ([]model.Product, error) {
	sql := "SELECT " + productColumns + productFrom +
		" WHERE " + flag + " = TRUE AND p.status = $1 ORDER BY p.created_at DESC LIMIT $2"

	rows, err := r.pool.Query(ctx, sql, model.ProductStatusActive, limit)
	if err != nil {
		r.logger.Error().Err(err).Str("flag", flag).Msg("failed to query flagged products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}
