package model

import "time"

// Product statuses.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product represents a catalog product.
type Product struct {
	ID               int64     `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Slug             string    `json:"slug" db:"slug"`
	Description      *string   `json:"description" db:"description"`
	ShortDescription *string   `json:"short_description" db:"short_description"`
	SKU              string    `json:"sku" db:"sku"`
	Price            float64   `json:"price" db:"price"`
	SalePrice        *float64  `json:"sale_price" db:"sale_price"`
	StockQuantity    int       `json:"stock_quantity" db:"stock_quantity"`
	CategoryID       *int64    `json:"category_id" db:"category_id"`
	IsFeatured       bool      `json:"is_featured" db:"is_featured"`
	IsBestseller     bool      `json:"is_bestseller" db:"is_bestseller"`
	Status           string    `json:"status" db:"status"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`

	// CategoryName is joined from categories on reads; never written.
	CategoryName *string `json:"category_name,omitempty" db:"category_name"`
}

// ProductCreate is the payload for creating a product.
type ProductCreate struct {
	Name             string   `json:"name"`
	Slug             string   `json:"slug"`
	Description      *string  `json:"description"`
	ShortDescription *string  `json:"short_description"`
	SKU              string   `json:"sku"`
	Price            float64  `json:"price"`
	SalePrice        *float64 `json:"sale_price"`
	StockQuantity    int      `json:"stock_quantity"`
	CategoryID       *int64   `json:"category_id"`
	IsFeatured       bool     `json:"is_featured"`
	IsBestseller     bool     `json:"is_bestseller"`
	Status           string   `json:"status"`
}

// ProductUpdate is a partial update payload. Nil fields are left untouched.
type ProductUpdate struct {
	Name             *string  `json:"name"`
	Slug             *string  `json:"slug"`
	Description      *string  `json:"description"`
	ShortDescription *string  `json:"short_description"`
	SKU              *string  `json:"sku"`
	Price            *float64 `json:"price"`
	SalePrice        *float64 `json:"sale_price"`
	StockQuantity    *int     `json:"stock_quantity"`
	CategoryID       *int64   `json:"category_id"`
	IsFeatured       *bool    `json:"is_featured"`
	IsBestseller     *bool    `json:"is_bestseller"`
	Status           *string  `json:"status"`
}

// ProductFilter selects and orders product listings. Nil pointer fields mean
// the filter is not applied; zero values participate.
type ProductFilter struct {
	CategoryID   *int64
	Status       *string
	IsFeatured   *bool
	IsBestseller *bool
	Search       string
	SortBy       string
	SortOrder    string
	Limit        int
	Offset       int
}
