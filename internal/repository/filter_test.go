package repository

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagination_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Pagination
		want Pagination
	}{
		{name: "zero values default", in: Pagination{}, want: Pagination{Page: 1, Limit: DefaultPageLimit}},
		{name: "negative page", in: Pagination{Page: -3, Limit: 5}, want: Pagination{Page: 1, Limit: 5}},
		{name: "limit capped", in: Pagination{Page: 2, Limit: 500}, want: Pagination{Page: 2, Limit: MaxPageLimit}},
		{name: "untouched", in: Pagination{Page: 4, Limit: 25}, want: Pagination{Page: 4, Limit: 25}},
		{name: "page capped to fit offset", in: Pagination{Page: math.MaxInt, Limit: 100}, want: Pagination{Page: math.MaxInt / 100, Limit: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestPagination_OffsetAndTotalPages(t *testing.T) {
	p := Pagination{Page: 3, Limit: 10}
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, 0, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(10))
	assert.Equal(t, 3, p.TotalPages(21))

	for _, huge := range []Pagination{
		{Page: 92233720368547760, Limit: 100},
		{Page: math.MaxInt, Limit: 1},
		{Page: math.MaxInt / 7, Limit: 7},
	} {
		assert.GreaterOrEqual(t, huge.Offset(), 0, "page=%d limit=%d", huge.Page, huge.Limit)
	}
}

func TestWhereBuilder_SQL(t *testing.T) {
	w := &whereBuilder{}
	assert.Equal(t, "", w.sql())

	w.eq("status", "new")
	w.eq("service", "")
	w.eq("priority", "high")
	assert.Equal(t, " WHERE status=$1 AND priority=$2", w.sql())
	assert.Equal(t, []any{"new", "high"}, w.args)

	suffix, args := w.page(Pagination{Page: 2, Limit: 5})
	assert.Equal(t, " LIMIT $3 OFFSET $4", suffix)
	assert.Equal(t, []any{"new", "high", 5, 5}, args)
	assert.Len(t, w.args, 2)
}
