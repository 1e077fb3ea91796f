package postgrest

import (
	"fmt"
	"reflect"
	"strings"
)

// Field returns the column name of the Go struct field name on T, so filters
// can refer to model fields instead of string literals:
//
//	q.Eq(postgrest.Field[Message]("Username"), "supabot")
//
// The column is the field's json tag name, or the field name itself when it
// has none. Field panics if T has no such field.
func Field[T any](name string) string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("postgrest: Field called on non-struct type %s", t))
	}

	sf, ok := t.FieldByName(name)
	if !ok {
		panic(fmt.Sprintf("postgrest: %s has no field %q", t, name))
	}

	tag, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if tag != "" && tag != "-" {
		return tag
	}
	return sf.Name
}
