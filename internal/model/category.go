package model

import "time"

// Category represents a product category. Categories form a two-level tree:
// parents have a NULL parent_id, children point to a parent.
type Category struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description *string   `json:"description" db:"description"`
	Image       *string   `json:"image" db:"image"`
	ParentID    *int64    `json:"parent_id" db:"parent_id"`
	SortOrder   int       `json:"sort_order" db:"sort_order"`
	IsFeatured  bool      `json:"is_featured" db:"is_featured"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// ProductCount is the number of active products in the category,
	// aggregated on reads.
	ProductCount int64 `json:"product_count" db:"product_count"`
}

// CategoryCreate is the payload for creating a category.
type CategoryCreate struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	ParentID    *int64  `json:"parent_id"`
	SortOrder   int     `json:"sort_order"`
	IsFeatured  bool    `json:"is_featured"`
	Status      string  `json:"status"`
}

// CategoryUpdate is a partial update payload. Nil fields are left untouched.
type CategoryUpdate struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	ParentID    *int64  `json:"parent_id"`
	SortOrder   *int    `json:"sort_order"`
	IsFeatured  *bool   `json:"is_featured"`
	Status      *string `json:"status"`
}

// ParentRef filters a nullable parent reference. Unset skips the filter;
// Null matches rows with no parent; otherwise rows with the given parent.
type ParentRef struct {
	Set  bool
	Null bool
	ID   int64
}

// ParentID builds a ParentRef matching children of the given parent.
func ParentID(id int64) ParentRef { return ParentRef{Set: true, ID: id} }

// NoParent builds a ParentRef matching root categories.
func NoParent() ParentRef { return ParentRef{Set: true, Null: true} }

// CategoryFilter selects and orders category listings.
type CategoryFilter struct {
	Status     *string
	ParentID   ParentRef
	IsFeatured *bool
	Search     string
	SortBy     string
	SortOrder  string
	Limit      int
	Offset     int
}
