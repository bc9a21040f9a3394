package query

import "strings"

// Definition is the per-entity configuration for list queries: which columns
// free-text search touches and which sort keys a caller may request. Sort
// keys map request names to column expressions so untrusted input never
// appears in the query text.
type Definition struct {
	SearchColumns []string
	SortColumns   map[string]string
	DefaultSortBy string
	DefaultOrder  string
}

// OrderBy renders an " ORDER BY col DIR" fragment. Unknown sort keys fall
// back to the definition's default; the direction is normalized to ASC or
// DESC and anything else falls back to the default order.
func (d Definition) OrderBy(sortBy, sortOrder string) string {
	col, ok := d.SortColumns[sortBy]
	if !ok {
		col = d.SortColumns[d.DefaultSortBy]
	}

	dir := strings.ToUpper(sortOrder)
	if dir != "ASC" && dir != "DESC" {
		dir = strings.ToUpper(d.DefaultOrder)
	}

	return " ORDER BY " + col + " " + dir
}
