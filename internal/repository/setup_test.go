package repository

import (
	"context"
	"testing"
	"time"

	"cakeshop/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer and returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	// Start PostgreSQL container
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	// Get connection string
	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Create connection pool
	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	// Create schema
	createSchema(t, pool)

	// Cleanup function
	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// createSchema creates the necessary database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			description TEXT,
			image TEXT,
			parent_id BIGINT REFERENCES categories(id),
			sort_order INT NOT NULL DEFAULT 0,
			is_featured BOOLEAN NOT NULL DEFAULT FALSE,
			status TEXT NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			description TEXT,
			short_description TEXT,
			sku TEXT NOT NULL UNIQUE,
			price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
			sale_price DOUBLE PRECISION,
			stock_quantity INT NOT NULL DEFAULT 0,
			category_id BIGINT REFERENCES categories(id),
			is_featured BOOLEAN NOT NULL DEFAULT FALSE,
			is_bestseller BOOLEAN NOT NULL DEFAULT FALSE,
			status TEXT NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_products_category_id ON products(category_id);

		CREATE TABLE IF NOT EXISTS customers (
			id BIGSERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			full_name TEXT NOT NULL,
			phone TEXT UNIQUE,
			address TEXT,
			date_of_birth TIMESTAMPTZ,
			gender TEXT,
			email_verified BOOLEAN NOT NULL DEFAULT FALSE,
			phone_verified BOOLEAN NOT NULL DEFAULT FALSE,
			status TEXT NOT NULL DEFAULT 'active',
			last_login TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS accounts (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			full_name TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'staff',
			status TEXT NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS orders (
			id BIGSERIAL PRIMARY KEY,
			order_number TEXT NOT NULL UNIQUE,
			customer_id BIGINT REFERENCES customers(id),
			customer_name TEXT NOT NULL,
			customer_email TEXT NOT NULL DEFAULT '',
			customer_phone TEXT,
			delivery_address TEXT,
			order_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			delivery_date TIMESTAMPTZ,
			delivery_time TEXT,
			subtotal DOUBLE PRECISION NOT NULL DEFAULT 0,
			tax_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			delivery_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
			discount_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			payment_method TEXT,
			payment_status TEXT NOT NULL DEFAULT 'pending',
			order_status TEXT NOT NULL DEFAULT 'pending',
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id BIGSERIAL PRIMARY KEY,
			order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE RESTRICT,
			product_id BIGINT REFERENCES products(id) ON DELETE SET NULL,
			product_name TEXT NOT NULL,
			quantity INT NOT NULL CHECK (quantity > 0),
			unit_price DOUBLE PRECISION NOT NULL CHECK (unit_price >= 0),
			total_price DOUBLE PRECISION NOT NULL,
			notes TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
	`

	_, err := pool.Exec(ctx, schema)
	require.NoError(t, err)
}

// seedCategory inserts a category and returns its generated ID.
func seedCategory(t *testing.T, pool *pgxpool.Pool, name, slug string) int64 {
	ctx := context.Background()

	var id int64
	err := pool.QueryRow(ctx,
		"INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id",
		name, slug,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// seedProduct inserts a product and returns its generated ID.
func seedProduct(t *testing.T, pool *pgxpool.Pool, payload model.ProductCreate) int64 {
	ctx := context.Background()

	var id int64
	err := pool.QueryRow(ctx, `
		INSERT INTO products (name, slug, sku, price, stock_quantity, category_id,
			is_featured, is_bestseller, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		payload.Name, payload.Slug, payload.SKU, payload.Price, payload.StockQuantity,
		payload.CategoryID, payload.IsFeatured, payload.IsBestseller, payload.Status,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// seedCustomer inserts a customer and returns its generated ID.
func seedCustomer(t *testing.T, pool *pgxpool.Pool, email, fullName string, phone *string) int64 {
	ctx := context.Background()

	var id int64
	err := pool.QueryRow(ctx,
		"INSERT INTO customers (email, password, full_name, phone) VALUES ($1, $2, $3, $4) RETURNING id",
		email, "hashed-password", fullName, phone,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// seedOrder inserts an order and returns its generated ID.
func seedOrder(t *testing.T, pool *pgxpool.Pool, orderNumber string, customerID *int64, total float64, status model.OrderStatus) int64 {
	ctx := context.Background()

	var id int64
	err := pool.QueryRow(ctx, `
		INSERT INTO orders (order_number, customer_id, customer_name, customer_email,
			subtotal, total_amount, order_status)
		VALUES ($1, $2, $3, $4, $5, $5, $6)
		RETURNING id`,
		orderNumber, customerID, "Test Customer", "test@example.com", total, status,
	).Scan(&id)
	require.NoError(t, err)
	return id
}
