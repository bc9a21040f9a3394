// Package query builds parameterized SQL fragments from optional filter
// values. Every value reaching the query text is a bound positional
// parameter; column names only ever come from compile-time constants or
// per-entity allow-lists, never from request input.
package query

import (
	"fmt"
	"strings"
)

// Builder accumulates WHERE conditions with deterministic positional
// parameter numbering, so base filters, search and pagination compose in any
// combination. The zero value is not usable; call NewBuilder.
type Builder struct {
	conds []string
	args  []any
	next  int
}

// NewBuilder returns a Builder whose first bound parameter is $1.
func NewBuilder() *Builder {
	return &Builder{next: 1}
}

// Equal appends "column = $n" and binds value.
func (b *Builder) Equal(column string, value any) *Builder {
	b.conds = append(b.conds, fmt.Sprintf("%s = $%d", column, b.next))
	b.args = append(b.args, value)
	b.next++
	return b
}

// IsNull appends "column IS NULL". No parameter is consumed.
func (b *Builder) IsNull(column string) *Builder {
	b.conds = append(b.conds, column+" IS NULL")
	return b
}

// AtLeast appends "column >= $n" and binds value.
func (b *Builder) AtLeast(column string, value any) *Builder {
	b.conds = append(b.conds, fmt.Sprintf("%s >= $%d", column, b.next))
	b.args = append(b.args, value)
	b.next++
	return b
}

// AtMost appends "column <= $n" and binds value.
func (b *Builder) AtMost(column string, value any) *Builder {
	b.conds = append(b.conds, fmt.Sprintf("%s <= $%d", column, b.next))
	b.args = append(b.args, value)
	b.next++
	return b
}

// Search appends a case-insensitive partial match across columns, joined
// with OR: "(c1 ILIKE $n OR c2 ILIKE $n+1 ...)". The term is bound once per
// column, wrapped in wildcards. An empty term or column list is a no-op.
func (b *Builder) Search(term string, columns ...string) *Builder {
	if term == "" || len(columns) == 0 {
		return b
	}
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf("%s ILIKE $%d", col, b.next)
		b.args = append(b.args, "%"+term+"%")
		b.next++
	}
	b.conds = append(b.conds, "("+strings.Join(parts, " OR ")+")")
	return b
}

// Where renders the accumulated conditions as a " WHERE ..." fragment with a
// leading space, or "" when no conditions were added.
func (b *Builder) Where() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// Pagination renders " LIMIT $n OFFSET $n+1" and binds limit and offset.
// A non-positive limit produces no clause: the listing is unbounded and the
// caller owns any default page size.
func (b *Builder) Pagination(limit, offset int) string {
	if limit <= 0 {
		return ""
	}
	clause := fmt.Sprintf(" LIMIT $%d OFFSET $%d", b.next, b.next+1)
	b.args = append(b.args, limit, offset)
	b.next += 2
	return clause
}

// Args returns the bound parameters in positional order.
func (b *Builder) Args() []any {
	return b.args
}
