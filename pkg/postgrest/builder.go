package postgrest

import (
	"net/http"
	"net/url"
)

// Builder is a request ready to be executed. It is the stage returned by
// Client.RPC and the base of every other builder stage.
//
// Builders are immutable: each call returns a new builder and leaves the
// receiver untouched, so a partially built query can be reused as a template.
type Builder struct {
	client *Client
	req    *request
}

// Executor is implemented by every builder stage.
type Executor interface {
	builder() *Builder
}

func (b *Builder) builder() *Builder { return b }

// with returns a copy of b with fn applied to a cloned request.
func (b *Builder) with(fn func(r *request)) Builder {
	r := b.req.clone()
	fn(r)
	return Builder{client: b.client, req: r}
}

// Method returns the HTTP method, or "" if none was set.
func (b *Builder) Method() string {
	if b.req == nil {
		return ""
	}
	return b.req.method
}

// URL returns the request URL including all accumulated query parameters.
func (b *Builder) URL() *url.URL {
	return b.req.fullURL()
}

// Param returns the query parameter stored under name.
func (b *Builder) Param(name string) string {
	return b.req.params.Get(name)
}

// Header returns a copy of the accumulated request headers.
func (b *Builder) Header() http.Header {
	return b.req.header.Clone()
}

// Body returns the request payload, or nil.
func (b *Builder) Body() any {
	return b.req.body
}
