package postgrest

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Message struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Message   string `json:"message"`
	ChannelID int64  `json:"channel_id"`
}

func newTestClient(t *testing.T, opts ...ClientOption) *Client {
	t.Helper()
	c, err := NewClient("http://localhost:3000", opts...)
	require.NoError(t, err)
	return c
}

func TestNewClient(t *testing.T) {
	_, err := NewClient("localhost:3000")
	assert.Error(t, err)

	_, err = NewClient("://bad")
	assert.Error(t, err)

	c, err := NewClient("https://example.supabase.co/rest/v1", WithAPIKey("secret"), WithHeader("X-Client-Info", "pgrest"))
	require.NoError(t, err)

	b := c.From("messages").Select("*")
	assert.Equal(t, "/rest/v1/messages", b.URL().Path)
	assert.Equal(t, "secret", b.Header().Get("apikey"))
	assert.Equal(t, "Bearer secret", b.Header().Get("Authorization"))
	assert.Equal(t, "pgrest", b.Header().Get("X-Client-Info"))
}

func TestHostOnlyURLPaths(t *testing.T) {
	c := newTestClient(t)

	assert.Equal(t, "/messages", c.From("messages").Select("*").URL().Path)
	assert.Equal(t, "/rpc/add", c.RPC("add", nil).URL().Path)
	assert.Equal(t, "http://localhost:3000/messages?select=%2A", c.From("messages").Select("*").URL().String())

	slash, err := NewClient("http://localhost:3000/")
	require.NoError(t, err)
	assert.Equal(t, "/messages", slash.From("messages").Select("*").URL().Path)
}

func TestClientSchema(t *testing.T) {
	c := newTestClient(t, WithSchema("public"))
	other := c.Schema("audit")

	assert.Equal(t, "public", c.From("t").req.schema)
	assert.Equal(t, "audit", other.From("t").req.schema)
}

func TestQueryBuilderSelect(t *testing.T) {
	c := newTestClient(t)

	t.Run("defaults", func(t *testing.T) {
		b := c.From("users").Select("")
		assert.Equal(t, http.MethodGet, b.Method())
		assert.Equal(t, "*", b.Param("select"))
		assert.Empty(t, b.Header().Get("Prefer"))
	})

	t.Run("normalizes columns", func(t *testing.T) {
		b := c.From("users").Select(`firstname ,"last name", sur name`)
		assert.Equal(t, `firstname,"last name",surname`, b.Param("select"))
	})

	t.Run("head with count", func(t *testing.T) {
		b := c.From("users").Select("*", WithHead(), WithCount(CountExact))
		assert.Equal(t, http.MethodHead, b.Method())
		assert.Equal(t, "count=exact", b.Header().Get("Prefer"))
	})
}

func TestQueryBuilderInsert(t *testing.T) {
	c := newTestClient(t)
	msg := Message{Username: "supabot", Message: "hi", ChannelID: 1}

	t.Run("single value becomes list", func(t *testing.T) {
		b := c.From("messages").Insert(msg)
		assert.Equal(t, http.MethodPost, b.Method())
		assert.Equal(t, "return=representation", b.Header().Get("Prefer"))
		assert.Equal(t, []any{msg}, b.Body())
		assert.Empty(t, b.Param("on_conflict"))
	})

	t.Run("list stays list", func(t *testing.T) {
		msgs := []Message{msg, msg}
		b := c.From("messages").Insert(msgs)
		assert.Equal(t, msgs, b.Body())
	})

	t.Run("upsert with count", func(t *testing.T) {
		b := c.From("messages").Insert(msg, WithUpsert(), WithCount(CountExact))
		assert.Equal(t, "return=representation,resolution=merge-duplicates,count=exact", b.Header().Get("Prefer"))
	})

	t.Run("on conflict requires upsert", func(t *testing.T) {
		b := c.From("messages").Insert(msg, WithOnConflict("username"))
		assert.Empty(t, b.Param("on_conflict"))

		b = c.From("messages").Upsert(msg, WithOnConflict("username"), WithReturning(ReturnMinimal))
		assert.Equal(t, "username", b.Param("on_conflict"))
		assert.Equal(t, "return=minimal,resolution=merge-duplicates", b.Header().Get("Prefer"))
	})
}

func TestQueryBuilderUpdateDelete(t *testing.T) {
	c := newTestClient(t)

	u := c.From("messages").Update(map[string]any{"message": "edited"}, WithReturning(ReturnMinimal), WithCount(CountPlanned), WithUpsert())
	assert.Equal(t, http.MethodPatch, u.Method())
	assert.Equal(t, "return=minimal,count=planned", u.Header().Get("Prefer"))
	assert.Equal(t, map[string]any{"message": "edited"}, u.Body())

	d := c.From("messages").Delete(WithCount(CountEstimated))
	assert.Equal(t, http.MethodDelete, d.Method())
	assert.Equal(t, "return=representation,count=estimated", d.Header().Get("Prefer"))
	assert.Nil(t, d.Body())
}

func TestRPC(t *testing.T) {
	c := newTestClient(t)
	params := map[string]any{"a": 1, "b": 2}

	b := c.RPC("add", params, WithCount(CountExact))
	assert.Equal(t, http.MethodPost, b.Method())
	assert.Equal(t, "/rpc/add", b.URL().Path)
	assert.Equal(t, params, b.Body())
	assert.Equal(t, "count=exact", b.Header().Get("Prefer"))
}

func TestBuildersAreImmutable(t *testing.T) {
	c := newTestClient(t)
	base := c.From("messages").Select("*").Eq("channel_id", 1)

	a := base.Eq("username", "supabot")
	b := base.Gt("id", 10)
	single := base.Single()

	assert.Empty(t, base.Param("username"))
	assert.Empty(t, base.Param("id"))
	assert.Empty(t, base.Header().Get("Accept"))

	assert.Equal(t, "eq.supabot", a.Param("username"))
	assert.Empty(t, a.Param("id"))
	assert.Equal(t, "gt.10", b.Param("id"))
	assert.Empty(t, b.Param("username"))
	assert.Equal(t, mimeSingleObject, single.Header().Get("Accept"))

	for _, q := range []*FilterBuilder{base, a, b} {
		assert.Equal(t, "eq.1", q.Param("channel_id"))
	}

	// header returned by Header is a copy
	h := base.Header()
	h.Set("X-Mutated", "yes")
	assert.Empty(t, base.Header().Get("X-Mutated"))
}

func TestURLEncodesParams(t *testing.T) {
	c := newTestClient(t)
	u := c.From("messages").Select("id,message").In("username", "a b", "c&d").Order("id", nil).URL()

	q := u.Query()
	assert.Equal(t, "id,message", q.Get("select"))
	assert.Equal(t, `in.("a b","c&d")`, q.Get("username"))
	assert.Equal(t, "id.asc.nullslast", q.Get("order"))
	assert.NotContains(t, u.RawQuery, " ")
}
