package postgrest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type taggedRow struct {
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"-"`
	Comment string
}

func TestField(t *testing.T) {
	assert.Equal(t, "channel_id", Field[Message]("ChannelID"))
	assert.Equal(t, "id", Field[*taggedRow]("ID"))
	assert.Equal(t, "Name", Field[taggedRow]("Name"))
	assert.Equal(t, "Comment", Field[taggedRow]("Comment"))

	assert.Panics(t, func() { Field[taggedRow]("Missing") })
	assert.Panics(t, func() { Field[string]("Len") })
}

func TestFieldInFilter(t *testing.T) {
	c := newTestClient(t)
	b := c.From("messages").Select("*").Eq(Field[Message]("Username"), "supabot")
	assert.Equal(t, "eq.supabot", b.Param("username"))
}
