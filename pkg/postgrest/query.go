package postgrest

import (
	"net/http"
	"reflect"
)

// QueryBuilder targets a single table or view. Its verb methods fix the HTTP
// method and return a FilterBuilder.
type QueryBuilder struct {
	Builder
}

// Select performs vertical filtering. An empty columns string selects "*".
// WithHead and WithCount are honored.
func (q *QueryBuilder) Select(columns string, opts ...QueryOption) *FilterBuilder {
	o := applyQueryOptions(opts)
	if columns == "" {
		columns = "*"
	}

	return newFilterBuilder(q.with(func(r *request) {
		r.method = http.MethodGet
		if o.head {
			r.method = http.MethodHead
		}
		r.setParam("select", cleanColumns(columns))
		if o.count != CountNone {
			r.setHeader("Prefer", Prefer{Count: o.count.String()}.String())
		}
	}))
}

// Insert creates one row (a struct or map) or many (a slice). A single row is
// sent as a one element array.
func (q *QueryBuilder) Insert(values any, opts ...QueryOption) *FilterBuilder {
	o := applyQueryOptions(opts)

	return newFilterBuilder(q.with(func(r *request) {
		r.method = http.MethodPost
		r.body = asList(values)
		if o.upsert && o.onConflict != "" {
			r.setParam("on_conflict", o.onConflict)
		}
		r.setHeader("Prefer", preferFor(o).String())
	}))
}

// Upsert is Insert with WithUpsert.
func (q *QueryBuilder) Upsert(values any, opts ...QueryOption) *FilterBuilder {
	return q.Insert(values, append(opts, WithUpsert())...)
}

// Update patches every row matched by the subsequent filters with value.
func (q *QueryBuilder) Update(value any, opts ...QueryOption) *FilterBuilder {
	o := applyQueryOptions(opts)
	o.upsert = false

	return newFilterBuilder(q.with(func(r *request) {
		r.method = http.MethodPatch
		r.body = value
		r.setHeader("Prefer", preferFor(o).String())
	}))
}

// Delete removes every row matched by the subsequent filters.
func (q *QueryBuilder) Delete(opts ...QueryOption) *FilterBuilder {
	o := applyQueryOptions(opts)
	o.upsert = false

	return newFilterBuilder(q.with(func(r *request) {
		r.method = http.MethodDelete
		r.body = nil
		r.setHeader("Prefer", preferFor(o).String())
	}))
}

func asList(values any) any {
	if values == nil {
		return []any{}
	}
	switch reflect.TypeOf(values).Kind() {
	case reflect.Slice, reflect.Array:
		return values
	}
	return []any{values}
}
