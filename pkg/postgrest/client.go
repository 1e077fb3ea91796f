package postgrest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/edgeflare/pgrest/pkg/httputil"
	"github.com/edgeflare/pgrest/pkg/jsonconv"
	"go.uber.org/zap"
)

// Transport performs one HTTP request. httputil.Client is the default.
type Transport interface {
	Do(ctx context.Context, req *httputil.Request) (*httputil.Response, error)
}

// Serializer encodes request bodies and decodes response bodies.
// Decoding must ignore unknown fields. jsonconv.Serializer is the default.
type Serializer interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Client is the entry point for building PostgREST requests.
type Client struct {
	url        *url.URL
	header     http.Header
	schema     string
	transport  Transport
	serializer Serializer
	logger     *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHeader adds a header sent with every request.
func WithHeader(name, value string) ClientOption {
	return func(c *Client) { c.header.Set(name, value) }
}

// WithHeaders adds headers sent with every request.
func WithHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		for name, value := range headers {
			c.header.Set(name, value)
		}
	}
}

// WithAPIKey sets the apikey and bearer Authorization headers.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.header.Set("apikey", key)
		c.header.Set("Authorization", "Bearer "+key)
	}
}

// WithSchema switches requests to a non-default schema using the
// Accept-Profile and Content-Profile headers.
func WithSchema(schema string) ClientOption {
	return func(c *Client) { c.schema = schema }
}

func WithTransport(t Transport) ClientOption {
	return func(c *Client) { c.transport = t }
}

func WithSerializer(s Serializer) ClientOption {
	return func(c *Client) { c.serializer = s }
}

func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// NewClient returns a client for the PostgREST endpoint at rawURL.
func NewClient(rawURL string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid PostgREST URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid PostgREST URL %q: scheme and host required", rawURL)
	}
	// JoinPath keeps an empty base path relative
	if u.Path == "" {
		u.Path = "/"
	}

	c := &Client{
		url:    u,
		header: http.Header{},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.transport == nil {
		c.transport = httputil.NewClient(&httputil.ClientOptions{Logger: c.logger})
	}
	if c.serializer == nil {
		c.serializer = jsonconv.New()
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}

	return c, nil
}

// Schema returns a copy of c that targets schema.
func (c *Client) Schema(schema string) *Client {
	cc := *c
	cc.header = c.header.Clone()
	cc.schema = schema
	return &cc
}

// From starts a query on table.
func (c *Client) From(table string) *QueryBuilder {
	return &QueryBuilder{Builder{
		client: c,
		req:    newRequest(c.url.JoinPath(table), c.header, c.schema),
	}}
}

// RPC prepares a call of the stored procedure fn with params as JSON body.
// Only WithCount is honored.
func (c *Client) RPC(fn string, params any, opts ...QueryOption) *Builder {
	o := applyQueryOptions(opts)

	r := newRequest(c.url.JoinPath("rpc", fn), c.header, c.schema)
	r.method = http.MethodPost
	r.body = params
	if o.count != CountNone {
		r.setHeader("Prefer", Prefer{Count: o.count.String()}.String())
	}

	return &Builder{client: c, req: r}
}
