// Package jsonconv provides the default JSON serializer of the PostgREST client.
package jsonconv

import (
	"github.com/goccy/go-json"
)

// Serializer encodes and decodes JSON with goccy/go-json. Unknown fields in
// decoded documents are ignored.
type Serializer struct{}

func New() *Serializer {
	return &Serializer{}
}

func (s *Serializer) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (s *Serializer) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
