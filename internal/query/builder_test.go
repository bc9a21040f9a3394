package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_Empty(t *testing.T) {
	qb := NewBuilder()

	assert.Empty(t, qb.Where())
	assert.Empty(t, qb.Args())
}

func TestBuilder_SingleCondition(t *testing.T) {
	qb := NewBuilder()
	qb.Equal("status", "active")

	assert.Equal(t, " WHERE status = $1", qb.Where())
	assert.Equal(t, []any{"active"}, qb.Args())
}

func TestBuilder_Composition(t *testing.T) {
	qb := NewBuilder()
	qb.Equal("category_id", int64(3))
	qb.Equal("status", "active")
	qb.Search("cake", "name", "description")

	assert.Equal(t,
		" WHERE category_id = $1 AND status = $2 AND (name ILIKE $3 OR description ILIKE $4)",
		qb.Where())
	assert.Equal(t, []any{int64(3), "active", "%cake%", "%cake%"}, qb.Args())
}

func TestBuilder_SearchNoop(t *testing.T) {
	t.Run("Empty term", func(t *testing.T) {
		qb := NewBuilder()
		qb.Search("", "name")
		assert.Empty(t, qb.Where())
	})

	t.Run("No columns", func(t *testing.T) {
		qb := NewBuilder()
		qb.Search("cake")
		assert.Empty(t, qb.Where())
	})
}

func TestBuilder_IsNull(t *testing.T) {
	qb := NewBuilder()
	qb.IsNull("parent_id")
	qb.Equal("status", "active")

	// IS NULL consumes no parameter, so status is still $1
	assert.Equal(t, " WHERE parent_id IS NULL AND status = $1", qb.Where())
	assert.Equal(t, []any{"active"}, qb.Args())
}

func TestBuilder_Ranges(t *testing.T) {
	qb := NewBuilder()
	qb.AtLeast("order_date::date", "2025-01-01")
	qb.AtMost("order_date::date", "2025-01-31")

	assert.Equal(t, " WHERE order_date::date >= $1 AND order_date::date <= $2", qb.Where())
	assert.Equal(t, []any{"2025-01-01", "2025-01-31"}, qb.Args())
}

func TestBuilder_Pagination(t *testing.T) {
	t.Run("Continues parameter numbering", func(t *testing.T) {
		qb := NewBuilder()
		qb.Equal("status", "active")

		clause := qb.Pagination(10, 20)

		assert.Equal(t, " LIMIT $2 OFFSET $3", clause)
		assert.Equal(t, []any{"active", 10, 20}, qb.Args())
	})

	t.Run("Non-positive limit produces no clause", func(t *testing.T) {
		qb := NewBuilder()
		assert.Empty(t, qb.Pagination(0, 0))
		assert.Empty(t, qb.Args())
	})

	t.Run("Without conditions starts at $1", func(t *testing.T) {
		qb := NewBuilder()
		assert.Equal(t, " LIMIT $1 OFFSET $2", qb.Pagination(5, 0))
	})
}

func TestDefinition_OrderBy(t *testing.T) {
	def := Definition{
		SortColumns: map[string]string{
			"name":       "p.name",
			"price":      "p.price",
			"created_at": "p.created_at",
		},
		DefaultSortBy: "created_at",
		DefaultOrder:  "DESC",
	}

	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		expected  string
	}{
		{
			name:      "Known column and direction",
			sortBy:    "price",
			sortOrder: "asc",
			expected:  " ORDER BY p.price ASC",
		},
		{
			name:      "Direction is case-insensitive",
			sortBy:    "name",
			sortOrder: "DeSc",
			expected:  " ORDER BY p.name DESC",
		},
		{
			name:      "Unknown column falls back to default",
			sortBy:    "price; DROP TABLE products",
			sortOrder: "asc",
			expected:  " ORDER BY p.created_at ASC",
		},
		{
			name:      "Unknown direction falls back to default",
			sortBy:    "price",
			sortOrder: "sideways",
			expected:  " ORDER BY p.price DESC",
		},
		{
			name:      "Both empty use all defaults",
			sortBy:    "",
			sortOrder: "",
			expected:  " ORDER BY p.created_at DESC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, def.OrderBy(tt.sortBy, tt.sortOrder))
		})
	}
}
