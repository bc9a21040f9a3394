package service

import (
	"context"

	"cakeshop/internal/model"
)

// ProductService defines business operations for catalog products.
type ProductService interface {
	// List retrieves products matching the filter plus the unpaginated total.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, int64, error)

	// GetByID retrieves a product or fails with a not-found error.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	GetBySKU(ctx context.Context, sku string) (*model.Product, error)

	// Create validates the payload, derives a slug from the name when none
	// is supplied, and inserts the product.
	Create(ctx context.Context, payload model.ProductCreate) (*model.Product, error)

	// Update writes only the supplied fields.
	Update(ctx context.Context, id int64, payload model.ProductUpdate) (*model.Product, error)

	// Delete removes a product or fails with a not-found error.
	Delete(ctx context.Context, id int64) error

	Featured(ctx context.Context, limit int) ([]model.Product, error)
	Bestsellers(ctx context.Context, limit int) ([]model.Product, error)
}

// CategoryService defines business operations for categories.
type CategoryService interface {
	List(ctx context.Context, filter model.CategoryFilter) ([]model.Category, int64, error)
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	Create(ctx context.Context, payload model.CategoryCreate) (*model.Category, error)
	Update(ctx context.Context, id int64, payload model.CategoryUpdate) (*model.Category, error)

	// Delete removes a category. It fails with a conflict error when the
	// category still has products, and a not-found error when it does not exist.
	Delete(ctx context.Context, id int64) error

	Featured(ctx context.Context, limit int) ([]model.Category, error)
	Parents(ctx context.Context) ([]model.Category, error)
	Children(ctx context.Context, parentID int64) ([]model.Category, error)
}

// CustomerService defines business operations for customers.
type CustomerService interface {
	List(ctx context.Context, filter model.CustomerFilter) ([]model.Customer, int64, error)
	GetByID(ctx context.Context, id int64) (*model.Customer, error)

	// Create validates uniqueness of email and phone and stores the
	// customer with a bcrypt-hashed password.
	Create(ctx context.Context, payload model.CustomerCreate) (*model.Customer, error)

	Update(ctx context.Context, id int64, payload model.CustomerUpdate) (*model.Customer, error)

	// Delete removes a customer. It fails with a conflict error when the
	// customer has orders.
	Delete(ctx context.Context, id int64) error

	// Authenticate verifies the email/password pair and stamps last_login.
	Authenticate(ctx context.Context, email, password string) (*model.Customer, error)

	Statistics(ctx context.Context) (*model.CustomerStatistics, error)
}

// AccountService defines business operations for staff accounts.
type AccountService interface {
	List(ctx context.Context) ([]model.Account, error)
	Create(ctx context.Context, payload model.AccountCreate) (*model.Account, error)

	// Authenticate verifies a staff username/password pair.
	Authenticate(ctx context.Context, username, password string) (*model.Account, error)
}

// OrderService defines business operations for orders. Multi-statement
// writes (create with items, delete with items) run in one transaction and
// roll back completely on any failure.
type OrderService interface {
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, int64, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)

	// Create atomically writes the order and its line items. When no order
	// number is supplied one is generated from the current date; a collision
	// surfaces as a conflict from the unique constraint.
	Create(ctx context.Context, payload model.OrderCreate) (*model.Order, error)

	// Update writes only the supplied order fields; line items are immutable.
	Update(ctx context.Context, id int64, payload model.OrderUpdate) (*model.Order, error)

	// UpdateStatus validates the status against the order-status enumeration
	// before any write.
	UpdateStatus(ctx context.Context, id int64, status string) (*model.Order, error)

	// UpdatePaymentStatus validates against the payment-status enumeration.
	UpdatePaymentStatus(ctx context.Context, id int64, status string) (*model.Order, error)

	// Delete atomically removes the order and all its line items.
	Delete(ctx context.Context, id int64) error

	Statistics(ctx context.Context) (*model.OrderStatistics, error)
}
