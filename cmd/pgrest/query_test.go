package main

import (
	"testing"

	"github.com/edgeflare/pgrest/pkg/postgrest"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuery(t *testing.T) *postgrest.FilterBuilder {
	t.Helper()
	c, err := postgrest.NewClient("http://localhost:3000")
	require.NoError(t, err)
	return c.From("users").Select("*")
}

func TestApplyFilter(t *testing.T) {
	tests := []struct {
		filter string
		column string
		want   string
	}{
		{"age=gte.18", "age", "gte.18"},
		{"name=not.is.null", "name", "not.is.null"},
		{"tags=cs.{a,b}", "tags", "cs.{a,b}"},
		{"email=ilike.*@example.com", "email", "ilike.*@example.com"},
		{`id=in.("1","2")`, "id", `in.("1","2")`},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			q, err := applyFilter(testQuery(t), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Param(tt.column))
		})
	}

	for _, bad := range []string{"age", "=eq.1", "age=18", "age=between.1"} {
		_, err := applyFilter(testQuery(t), bad)
		assert.Error(t, err, bad)
	}
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		order  string
		column string
		want   postgrest.OrderOptions
	}{
		{"id", "id", postgrest.OrderOptions{}},
		{"id.desc", "id", postgrest.OrderOptions{Descending: true}},
		{"created_at.desc.nullsfirst", "created_at", postgrest.OrderOptions{Descending: true, NullsFirst: true}},
		{"name.asc.nullslast", "name", postgrest.OrderOptions{}},
	}

	for _, tt := range tests {
		column, opts := parseOrder(tt.order)
		assert.Equal(t, tt.column, column)
		assert.Equal(t, tt.want, *opts)
	}
}

func TestVerbOptions(t *testing.T) {
	f := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.String("count", "", "")
	f.Bool("minimal", false, "")
	require.NoError(t, f.Parse([]string{"--count", "exact", "--minimal"}))

	opts, err := verbOptions(f)
	require.NoError(t, err)
	c, err := postgrest.NewClient("http://localhost:3000")
	require.NoError(t, err)
	q := c.From("users").Delete(opts...)
	assert.Equal(t, "return=minimal,count=exact", q.Header().Get("Prefer"))

	require.NoError(t, f.Set("count", "all"))
	_, err = verbOptions(f)
	assert.Error(t, err)
}

func TestReadData(t *testing.T) {
	f := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.String("data", "", "")

	require.NoError(t, f.Set("data", `{"name":"a"}`))
	v, err := readData(f)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "a"}, v)

	require.NoError(t, f.Set("data", `{bad`))
	_, err = readData(f)
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	plain := &postgrest.HTTPError{StatusCode: 404, Body: "not found"}
	assert.EqualError(t, describe(plain), "unexpected response status: 404: not found")

	detailed := &postgrest.HTTPError{StatusCode: 406, Body: `{"code":"PGRST116","message":"multiple rows","hint":null}`}
	err := describe(detailed)
	assert.ErrorIs(t, err, detailed)
	assert.Contains(t, err.Error(), "multiple rows (PGRST116)")

	other := assert.AnError
	assert.Same(t, other, describe(other))
}

func TestPaginate(t *testing.T) {
	base := &testQuery(t).TransformBuilder

	tb, err := paginate(base, 10, 20)
	require.NoError(t, err)
	assert.Equal(t, "20", tb.Param("offset"))
	assert.Equal(t, "10", tb.Param("limit"))

	tb, err = paginate(base, 5, 0)
	require.NoError(t, err)
	assert.Equal(t, "5", tb.Param("limit"))
	assert.Empty(t, tb.Param("offset"))

	tb, err = paginate(base, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, tb.Param("limit"))

	_, err = paginate(base, 0, 20)
	assert.EqualError(t, err, "--offset requires --limit")

	_, err = paginate(base, -1, 0)
	assert.Error(t, err)
}
