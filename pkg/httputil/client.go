package httputil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/edgeflare/pgrest/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/net/http/httpproxy"
)

// Request is a single outbound HTTP request.
type Request struct {
	Header http.Header
	Method string
	URL    string
	Body   []byte
}

// Response is a fully read HTTP response.
type Response struct {
	Header     http.Header
	Body       []byte
	StatusCode int
}

// ClientOptions holds configuration for Client.
type ClientOptions struct {
	Logger         *zap.Logger
	HTTPClient     *http.Client // overrides Timeout and proxy settings
	Timeout        time.Duration
	RetryEnabled   bool
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultClientOptions returns ClientOptions with sensible defaults.
// Retries are disabled.
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		Timeout:        30 * time.Second,
		MaxRetries:     3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     10 * time.Second,
		Logger:         zap.NewNop(),
	}
}

// Client sends requests over net/http. Proxies are taken from the
// HTTP_PROXY, HTTPS_PROXY and NO_PROXY environment variables.
type Client struct {
	http *http.Client
	opts ClientOptions
}

// NewClient returns a Client. Zero fields of opts fall back to
// DefaultClientOptions.
func NewClient(opts *ClientOptions) *Client {
	o := DefaultClientOptions()
	if opts != nil {
		o.RetryEnabled = opts.RetryEnabled
		o.HTTPClient = opts.HTTPClient
		if opts.Logger != nil {
			o.Logger = opts.Logger
		}
		if opts.Timeout > 0 {
			o.Timeout = opts.Timeout
		}
		if opts.MaxRetries > 0 {
			o.MaxRetries = opts.MaxRetries
		}
		if opts.InitialBackoff > 0 {
			o.InitialBackoff = opts.InitialBackoff
		}
		if opts.MaxBackoff > 0 {
			o.MaxBackoff = opts.MaxBackoff
		}
	}

	hc := o.HTTPClient
	if hc == nil {
		proxy := httpproxy.FromEnvironment().ProxyFunc()
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.Proxy = func(r *http.Request) (*url.URL, error) {
			return proxy(r.URL)
		}
		hc = &http.Client{
			Timeout:   o.Timeout,
			Transport: transport,
		}
	}

	return &Client{http: hc, opts: o}
}

// errRetryableStatus marks a response worth retrying (429 or 5xx).
var errRetryableStatus = errors.New("retryable response status")

// Do performs req. A non-2xx status is not an error; the response is
// returned for the caller to inspect. With RetryEnabled, network errors,
// 429 and 5xx responses are retried with exponential backoff.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	var response *Response
	attempt := 0

	operation := func() error {
		attempt++
		if attempt > 1 {
			metrics.Retries.WithLabelValues(req.Method).Inc()
			c.opts.Logger.Info("retrying request",
				zap.String("method", req.Method),
				zap.String("url", req.URL),
				zap.Int("attempt", attempt),
			)
		}

		var body io.Reader
		if req.Body != nil {
			body = bytes.NewReader(req.Body)
		}

		httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		for key, values := range req.Header {
			for _, value := range values {
				httpReq.Header.Add(key, value)
			}
		}

		resp, err := c.http.Do(httpReq)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}

		response = &Response{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       respBody,
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return errRetryableStatus
		}
		return nil
	}

	var err error
	if c.opts.RetryEnabled {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = c.opts.InitialBackoff
		b.MaxInterval = c.opts.MaxBackoff
		err = backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.opts.MaxRetries)), ctx))
	} else {
		err = operation()
	}

	if errors.Is(err, errRetryableStatus) {
		return response, nil
	}
	if err != nil {
		return nil, err
	}
	return response, nil
}
