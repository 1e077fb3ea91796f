package postgrest

import (
	"strconv"
)

// TransformBuilder refines a filtered request with ordering, pagination and
// single-row mode. It has no filter methods of its own.
type TransformBuilder struct {
	Builder
}

// OrderOptions tweaks Order. The zero value orders ascending, nulls last.
type OrderOptions struct {
	Descending   bool
	NullsFirst   bool
	ForeignTable string
}

func foreignKey(foreignTable, key string) string {
	if foreignTable == "" {
		return key
	}
	return `"` + foreignTable + `".` + key
}

// Select overwrites the select parameter set by QueryBuilder.Select.
func (t *TransformBuilder) Select(columns string) *TransformBuilder {
	if columns == "" {
		columns = "*"
	}
	return &TransformBuilder{t.with(func(r *request) {
		r.setParam("select", cleanColumns(columns))
	})}
}

// Order sorts the result by column. A second call replaces the first.
func (t *TransformBuilder) Order(column string, opts *OrderOptions) *TransformBuilder {
	if opts == nil {
		opts = &OrderOptions{}
	}
	direction := "asc"
	if opts.Descending {
		direction = "desc"
	}
	nulls := "nullslast"
	if opts.NullsFirst {
		nulls = "nullsfirst"
	}

	return &TransformBuilder{t.with(func(r *request) {
		r.setParam(foreignKey(opts.ForeignTable, "order"), column+"."+direction+"."+nulls)
	})}
}

// Limit caps the number of rows returned.
func (t *TransformBuilder) Limit(count int64) *TransformBuilder {
	return t.LimitForeign("", count)
}

// LimitForeign caps the number of rows of an embedded foreign table.
func (t *TransformBuilder) LimitForeign(foreignTable string, count int64) *TransformBuilder {
	return &TransformBuilder{t.with(func(r *request) {
		r.setParam(foreignKey(foreignTable, "limit"), strconv.FormatInt(count, 10))
	})}
}

// Range limits the result to rows from..to, both inclusive.
func (t *TransformBuilder) Range(from, to int64) *TransformBuilder {
	return t.RangeForeign("", from, to)
}

// RangeForeign applies Range to an embedded foreign table.
func (t *TransformBuilder) RangeForeign(foreignTable string, from, to int64) *TransformBuilder {
	return &TransformBuilder{t.with(func(r *request) {
		r.setParam(foreignKey(foreignTable, "offset"), strconv.FormatInt(from, 10))
		r.setParam(foreignKey(foreignTable, "limit"), strconv.FormatInt(to-from+1, 10))
	})}
}

// Single asks PostgREST to return exactly one object instead of an array.
// Any other row count makes the server answer with an error status.
func (t *TransformBuilder) Single() *TransformBuilder {
	return &TransformBuilder{t.with(func(r *request) {
		r.setHeader("Accept", mimeSingleObject)
	})}
}
