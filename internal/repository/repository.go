package repository

import (
	"context"

	"cakeshop/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProductRepository defines data access for catalog products.
type ProductRepository interface {
	// List retrieves products matching the filter, joined with their
	// category name, in the requested sort order.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// Count returns the number of products matching the filter, ignoring
	// pagination, so that pages = ceil(count/limit) is exact.
	Count(ctx context.Context, filter model.ProductFilter) (int64, error)

	// GetByID retrieves a product by ID, or nil when it does not exist.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetBySKU retrieves a product by its unique SKU.
	GetBySKU(ctx context.Context, sku string) (*model.Product, error)

	// GetBySlug retrieves a product by its unique slug.
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)

	// Create inserts a product and returns it with its generated ID.
	Create(ctx context.Context, payload model.ProductCreate) (*model.Product, error)

	// Update writes only the non-nil fields of the payload. An empty payload
	// is a no-op that still returns the current row. Returns nil when the
	// product does not exist.
	Update(ctx context.Context, id int64, payload model.ProductUpdate) (*model.Product, error)

	// Delete removes a product, reporting whether it existed.
	Delete(ctx context.Context, id int64) (bool, error)

	// Featured retrieves up to limit active featured products, newest first.
	Featured(ctx context.Context, limit int) ([]model.Product, error)

	// Bestsellers retrieves up to limit active bestseller products, newest first.
	Bestsellers(ctx context.Context, limit int) ([]model.Product, error)
}

// CategoryRepository defines data access for product categories.
type CategoryRepository interface {
	List(ctx context.Context, filter model.CategoryFilter) ([]model.Category, error)
	Count(ctx context.Context, filter model.CategoryFilter) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	Create(ctx context.Context, payload model.CategoryCreate) (*model.Category, error)
	Update(ctx context.Context, id int64, payload model.CategoryUpdate) (*model.Category, error)

	// Delete removes a category, reporting whether it existed. A category
	// that still owns products is not deleted; the call fails with a
	// conflict error and both sides stay untouched.
	Delete(ctx context.Context, id int64) (bool, error)

	// Featured retrieves up to limit active featured categories by sort order.
	Featured(ctx context.Context, limit int) ([]model.Category, error)

	// Parents retrieves active root categories by sort order.
	Parents(ctx context.Context) ([]model.Category, error)

	// Children retrieves the active children of a parent by sort order.
	Children(ctx context.Context, parentID int64) ([]model.Category, error)
}

// CustomerRepository defines data access for customers.
type CustomerRepository interface {
	List(ctx context.Context, filter model.CustomerFilter) ([]model.Customer, error)
	Count(ctx context.Context, filter model.CustomerFilter) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	GetByEmail(ctx context.Context, email string) (*model.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*model.Customer, error)

	// Create inserts a customer. The password in the payload must already be
	// hashed; repositories never see plaintext.
	Create(ctx context.Context, payload model.CustomerCreate) (*model.Customer, error)

	Update(ctx context.Context, id int64, payload model.CustomerUpdate) (*model.Customer, error)

	// Delete removes a customer, reporting whether it existed. A customer
	// with at least one order is not deleted; the call fails with a
	// conflict error.
	Delete(ctx context.Context, id int64) (bool, error)

	// EmailExists reports whether another customer already uses the email.
	// excludeID ignores one row, for update-path checks; pass 0 on create.
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)

	// PhoneExists is the phone counterpart of EmailExists.
	PhoneExists(ctx context.Context, phone string, excludeID int64) (bool, error)

	// UpdateLastLogin stamps the customer's last_login with the current time.
	UpdateLastLogin(ctx context.Context, id int64) error

	// Statistics aggregates customer counts in a single query.
	Statistics(ctx context.Context) (*model.CustomerStatistics, error)
}

// AccountRepository defines data access for staff accounts.
type AccountRepository interface {
	List(ctx context.Context) ([]model.Account, error)
	GetByID(ctx context.Context, id int64) (*model.Account, error)
	GetByUsername(ctx context.Context, username string) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	Create(ctx context.Context, payload model.AccountCreate) (*model.Account, error)
}

// OrderRepository defines data access for orders and their line items.
// Multi-statement writes run inside a transaction owned by the caller; the
// repository only exposes the primitives.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts the order row within the transaction and sets the
	// generated ID on the order.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems batch-inserts line items within the transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// DeleteOrderItems removes all line items of an order within the transaction.
	DeleteOrderItems(ctx context.Context, tx pgx.Tx, orderID int64) error

	// DeleteOrder removes the order row within the transaction, reporting
	// whether it existed.
	DeleteOrder(ctx context.Context, tx pgx.Tx, orderID int64) (bool, error)

	// GetByID retrieves an order with its items, or nil when it does not exist.
	GetByID(ctx context.Context, id int64) (*model.Order, error)

	// List retrieves orders matching the filter, each with its items.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// Count returns the number of orders matching the filter, ignoring pagination.
	Count(ctx context.Context, filter model.OrderFilter) (int64, error)

	// Update writes only the non-nil fields of the payload. Returns nil when
	// the order does not exist.
	Update(ctx context.Context, id int64, payload model.OrderUpdate) (*model.Order, error)

	// Statistics aggregates order counts and revenue in a single query.
	Statistics(ctx context.Context) (*model.OrderStatistics, error)
}
