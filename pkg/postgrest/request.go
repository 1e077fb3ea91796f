package postgrest

import (
	"net/http"
	"net/url"
)

// request accumulates everything needed to issue one PostgREST call.
// Builders never mutate a request they did not create: every change is
// applied to a clone.
type request struct {
	url    *url.URL
	method string
	schema string
	header http.Header
	params url.Values
	body   any
}

func newRequest(u *url.URL, header http.Header, schema string) *request {
	return &request{
		url:    u,
		schema: schema,
		header: header.Clone(),
		params: url.Values{},
	}
}

func (r *request) clone() *request {
	params := make(url.Values, len(r.params))
	for k, v := range r.params {
		params[k] = append([]string(nil), v...)
	}
	return &request{
		url:    r.url,
		method: r.method,
		schema: r.schema,
		header: r.header.Clone(),
		params: params,
		body:   r.body,
	}
}

// setParam overwrites any previous value stored under name.
func (r *request) setParam(name, value string) {
	r.params.Set(name, value)
}

func (r *request) setHeader(name, value string) {
	r.header.Set(name, value)
}

// fullURL merges the accumulated query parameters into the base URL.
func (r *request) fullURL() *url.URL {
	u := *r.url
	q := u.Query()
	for k, v := range r.params {
		q[k] = v
	}
	u.RawQuery = q.Encode()
	return &u
}
