package postgrest

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/goccy/go-json"
)

// FilterBuilder appends horizontal filters to a request. Each filter is
// stored as one query parameter named after the column, so filtering the
// same column twice keeps only the last filter; use Or or Filter with a
// distinct column expression to combine conditions on one column.
//
// The embedded TransformBuilder methods (Order, Limit, Range, Single, ...)
// end the filtering stage.
type FilterBuilder struct {
	TransformBuilder
}

func newFilterBuilder(b Builder) *FilterBuilder {
	return &FilterBuilder{TransformBuilder{b}}
}

func (f *FilterBuilder) set(column, value string) *FilterBuilder {
	return newFilterBuilder(f.with(func(r *request) {
		r.setParam(column, value)
	}))
}

func (f *FilterBuilder) op(column string, op FilterOperator, value string) *FilterBuilder {
	return f.set(column, op.String()+"."+value)
}

// Filter matches rows where column satisfies op against value. The value is
// rendered verbatim and must follow PostgREST syntax for op.
func (f *FilterBuilder) Filter(column string, op FilterOperator, value any) *FilterBuilder {
	return f.op(column, op, formatValue(value))
}

// Not matches rows that do not satisfy the filter.
func (f *FilterBuilder) Not(column string, op FilterOperator, value any) *FilterBuilder {
	return f.set(column, "not."+op.String()+"."+formatValue(value))
}

// Or matches rows satisfying at least one of the comma separated filters,
// e.g. "age.gt.18,status.eq.active". The expression is not validated.
func (f *FilterBuilder) Or(filters string) *FilterBuilder {
	return f.set("or", "("+filters+")")
}

// Match applies Eq for every column/value pair of query.
func (f *FilterBuilder) Match(query map[string]any) *FilterBuilder {
	columns := make([]string, 0, len(query))
	for column := range query {
		columns = append(columns, column)
	}
	slices.Sort(columns)

	return newFilterBuilder(f.with(func(r *request) {
		for _, column := range columns {
			r.setParam(column, OpEq.String()+"."+formatValue(query[column]))
		}
	}))
}

func (f *FilterBuilder) Eq(column string, value any) *FilterBuilder {
	return f.op(column, OpEq, formatValue(value))
}

func (f *FilterBuilder) Neq(column string, value any) *FilterBuilder {
	return f.op(column, OpNeq, formatValue(value))
}

func (f *FilterBuilder) Gt(column string, value any) *FilterBuilder {
	return f.op(column, OpGt, formatValue(value))
}

func (f *FilterBuilder) Gte(column string, value any) *FilterBuilder {
	return f.op(column, OpGte, formatValue(value))
}

func (f *FilterBuilder) Lt(column string, value any) *FilterBuilder {
	return f.op(column, OpLt, formatValue(value))
}

func (f *FilterBuilder) Lte(column string, value any) *FilterBuilder {
	return f.op(column, OpLte, formatValue(value))
}

// Like matches column against a case sensitive pattern ("*" is the wildcard).
func (f *FilterBuilder) Like(column, pattern string) *FilterBuilder {
	return f.op(column, OpLike, pattern)
}

// ILike matches column against a case insensitive pattern.
func (f *FilterBuilder) ILike(column, pattern string) *FilterBuilder {
	return f.op(column, OpILike, pattern)
}

// Is checks for exact equality with null (nil), true or false.
func (f *FilterBuilder) Is(column string, value *bool) *FilterBuilder {
	if value == nil {
		return f.op(column, OpIs, "null")
	}
	return f.op(column, OpIs, fmt.Sprint(*value))
}

// IsNull is Is(column, nil).
func (f *FilterBuilder) IsNull(column string) *FilterBuilder {
	return f.Is(column, nil)
}

// In matches rows whose column is one of values: in.("a","b").
// Values are quoted but not escaped.
func (f *FilterBuilder) In(column string, values ...any) *FilterBuilder {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = `"` + formatValue(v) + `"`
	}
	return f.op(column, OpIn, "("+strings.Join(quoted, ",")+")")
}

// Contains matches array, range or jsonb columns containing value.
// Slices render as {a,b}, maps and structs as JSON.
func (f *FilterBuilder) Contains(column string, value any) *FilterBuilder {
	return f.op(column, OpCs, formatSet(value))
}

// ContainedBy matches array, range or jsonb columns contained in value.
func (f *FilterBuilder) ContainedBy(column string, value any) *FilterBuilder {
	return f.op(column, OpCd, formatSet(value))
}

// Overlaps matches array or range columns sharing an element with value.
func (f *FilterBuilder) Overlaps(column string, value any) *FilterBuilder {
	return f.op(column, OpOv, formatSet(value))
}

// RangeLt matches range columns strictly left of rng.
func (f *FilterBuilder) RangeLt(column, rng string) *FilterBuilder {
	return f.op(column, OpSl, rng)
}

// RangeGt matches range columns strictly right of rng.
func (f *FilterBuilder) RangeGt(column, rng string) *FilterBuilder {
	return f.op(column, OpSr, rng)
}

// RangeGte matches range columns that do not extend to the left of rng.
func (f *FilterBuilder) RangeGte(column, rng string) *FilterBuilder {
	return f.op(column, OpNxl, rng)
}

// RangeLte matches range columns that do not extend to the right of rng.
func (f *FilterBuilder) RangeLte(column, rng string) *FilterBuilder {
	return f.op(column, OpNxr, rng)
}

// Adjacent matches range columns adjacent to rng.
func (f *FilterBuilder) Adjacent(column, rng string) *FilterBuilder {
	return f.op(column, OpAdj, rng)
}

// TextSearch matches a tsvector column against query. config names the text
// search configuration, e.g. "english"; leave it empty for the default.
func (f *FilterBuilder) TextSearch(column, query string, typ TextSearchType, config string) *FilterBuilder {
	prefix := typ.String()
	if config != "" {
		prefix += "(" + config + ")"
	}
	return f.set(column, prefix+"."+query)
}

func (f *FilterBuilder) FTS(column, query, config string) *FilterBuilder {
	return f.TextSearch(column, query, TSVector, config)
}

func (f *FilterBuilder) PLFTS(column, query, config string) *FilterBuilder {
	return f.TextSearch(column, query, PlainTo, config)
}

func (f *FilterBuilder) PHFTS(column, query, config string) *FilterBuilder {
	return f.TextSearch(column, query, PhraseTo, config)
}

func (f *FilterBuilder) WFTS(column, query, config string) *FilterBuilder {
	return f.TextSearch(column, query, WebSearch, config)
}

// formatValue renders a scalar filter value. Pointers are followed and nil
// renders as null.
func formatValue(value any) string {
	rv := reflect.ValueOf(value)
	if s, ok := value.(fmt.Stringer); ok && !(rv.Kind() == reflect.Pointer && rv.IsNil()) {
		return s.String()
	}
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "null"
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return "null"
	}
	return fmt.Sprint(rv.Interface())
}

func formatSet(value any) string {
	if s, ok := value.(string); ok {
		return s
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = formatValue(rv.Index(i).Interface())
		}
		return "{" + strings.Join(parts, ",") + "}"
	case reflect.Map, reflect.Struct:
		if b, err := json.Marshal(value); err == nil {
			return string(b)
		}
	}
	return formatValue(value)
}
