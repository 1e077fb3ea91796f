package postgrest

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/edgeflare/pgrest/pkg/httputil"
	"github.com/edgeflare/pgrest/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	mimeJSON         = "application/json"
	mimeText         = "text/plain"
	mimeSingleObject = "application/vnd.pgrst.object+json"

	headerRequestID = "X-Request-Id"
)

// Shape is the form a response body is decoded into.
type Shape int

const (
	ShapeList   Shape = iota // JSON array of records
	ShapeObject              // single JSON value, usually with Single()
	ShapeText                // raw body, requested as text/plain
)

// Response is a successful PostgREST response.
type Response[T any] struct {
	StatusCode int
	Header     http.Header
	Body       T      // zero value when the response has no body
	Count      *int64 // total rows, only when requested with WithCount
}

type rawResponse struct {
	statusCode int
	header     http.Header
	body       []byte
	count      *int64
}

// Execute runs q and decodes the body as a list of T.
func Execute[T any](ctx context.Context, q Executor) (*Response[[]T], error) {
	return decode[[]T](ctx, q, ShapeList)
}

// ExecuteSingle runs q and decodes the body as one T. Pair it with Single()
// when selecting rows, so PostgREST returns an object instead of an array.
func ExecuteSingle[T any](ctx context.Context, q Executor) (*Response[T], error) {
	return decode[T](ctx, q, ShapeObject)
}

// ExecuteText runs q with Accept: text/plain and returns the raw body.
func ExecuteText(ctx context.Context, q Executor) (*Response[string], error) {
	raw, err := q.builder().execute(ctx, ShapeText)
	if err != nil {
		return nil, err
	}
	return &Response[string]{
		StatusCode: raw.statusCode,
		Header:     raw.header,
		Body:       string(raw.body),
		Count:      raw.count,
	}, nil
}

func decode[T any](ctx context.Context, q Executor, shape Shape) (*Response[T], error) {
	b := q.builder()
	raw, err := b.execute(ctx, shape)
	if err != nil {
		return nil, err
	}

	resp := &Response[T]{
		StatusCode: raw.statusCode,
		Header:     raw.header,
		Count:      raw.count,
	}
	if len(bytes.TrimSpace(raw.body)) > 0 {
		if err := b.client.serializer.Unmarshal(raw.body, &resp.Body); err != nil {
			return nil, &TransportError{Cause: fmt.Errorf("malformed response body: %w", err)}
		}
	}
	return resp, nil
}

// execute issues exactly one HTTP request for the accumulated state.
func (b *Builder) execute(ctx context.Context, shape Shape) (*rawResponse, error) {
	if b.req == nil || b.req.method == "" {
		panic(ErrMethodNotSet)
	}
	c, r := b.client, b.req

	header := r.header.Clone()
	if r.schema != "" {
		if r.method == http.MethodGet || r.method == http.MethodHead {
			header.Set("Accept-Profile", r.schema)
		} else {
			header.Set("Content-Profile", r.schema)
		}
	}

	if shape == ShapeText {
		header.Set("Accept", mimeText)
	} else if header.Get("Accept") == "" {
		header.Set("Accept", mimeJSON)
	}

	var body []byte
	if r.body != nil {
		var err error
		body, err = c.serializer.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		if header.Get("Content-Type") == "" {
			header.Set("Content-Type", mimeJSON)
		}
	}

	reqID := header.Get(headerRequestID)
	if reqID == "" {
		reqID = uuid.NewString()
		header.Set(headerRequestID, reqID)
	}

	u := r.fullURL().String()
	start := time.Now()
	resp, err := c.transport.Do(ctx, &httputil.Request{
		Method: r.method,
		URL:    u,
		Header: header,
		Body:   body,
	})
	latency := time.Since(start)

	fields := []zap.Field{
		zap.String("req_id", reqID),
		zap.String("method", r.method),
		zap.String("url", u),
		zap.Duration("latency", latency),
	}

	if err != nil {
		metrics.ObserveRequest(r.method, "error", latency)
		// cancellation and deadlines belong to the caller
		if ctxErr := ctx.Err(); ctxErr != nil {
			c.logger.Debug("request canceled", append(fields, zap.Error(ctxErr))...)
			return nil, ctxErr
		}
		c.logger.Warn("request failed", append(fields, zap.Error(err))...)
		return nil, &TransportError{Cause: err}
	}

	metrics.ObserveRequest(r.method, strconv.Itoa(resp.StatusCode), latency)
	fields = append(fields, zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("unexpected response status", fields...)
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	count := extractCount(header, resp.Header)
	if count != nil {
		fields = append(fields, zap.Int64("count", *count))
	}
	c.logger.Debug("request", fields...)

	return &rawResponse{
		statusCode: resp.StatusCode,
		header:     resp.Header,
		body:       resp.Body,
		count:      count,
	}, nil
}
