package repository

import (
	"fmt"
	"math"
	"strings"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Pagination is 1-indexed offset paging.
type Pagination struct {
	Page  int
	Limit int
}

// Normalize clamps page and limit into their legal ranges. Page is capped so
// that Offset never overflows.
func (p Pagination) Normalize() Pagination {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if maxPage := math.MaxInt / p.Limit; p.Page > maxPage {
		p.Page = maxPage
	}
	return p
}

// Offset is the number of rows skipped before the page.
func (p Pagination) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// TotalPages is ceil(total/limit).
func (p Pagination) TotalPages(total int) int {
	n := p.Normalize()
	return (total + n.Limit - 1) / n.Limit
}

// ListFilter narrows submission listings. Empty fields match everything.
type ListFilter struct {
	Status  string
	Service string
	Pagination
}

// UserFilter narrows user listings.
type UserFilter struct {
	Role string
	Pagination
}

// whereBuilder accumulates AND-ed conditions with positional args.
type whereBuilder struct {
	clauses []string
	args    []any
}

func (w *whereBuilder) eq(column string, value string) {
	if value == "" {
		return
	}
	w.args = append(w.args, value)
	w.clauses = append(w.clauses, fmt.Sprintf("%s=$%d", column, len(w.args)))
}

func (w *whereBuilder) sql() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// page appends LIMIT/OFFSET placeholders and returns the suffix.
func (w *whereBuilder) page(p Pagination) (string, []any) {
	n := p.Normalize()
	args := append(append([]any{}, w.args...), n.Limit, p.Offset())
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}
