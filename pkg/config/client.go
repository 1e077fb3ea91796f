package config

import (
	"github.com/edgeflare/pgrest/pkg/httputil"
	"github.com/edgeflare/pgrest/pkg/postgrest"
	"go.uber.org/zap"
)

// NewClient wires the default transport and serializer into a PostgREST
// client configured by c.
func (c *Config) NewClient(logger *zap.Logger) (*postgrest.Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	transport := httputil.NewClient(&httputil.ClientOptions{
		Logger:         logger,
		Timeout:        c.Timeout,
		RetryEnabled:   c.Retry.Enabled,
		MaxRetries:     c.Retry.MaxRetries,
		InitialBackoff: c.Retry.InitialBackoff,
		MaxBackoff:     c.Retry.MaxBackoff,
	})

	opts := []postgrest.ClientOption{
		postgrest.WithTransport(transport),
		postgrest.WithLogger(logger),
		postgrest.WithHeaders(c.Headers),
	}
	if c.APIKey != "" {
		opts = append(opts, postgrest.WithAPIKey(c.APIKey))
	}
	if c.Schema != "" {
		opts = append(opts, postgrest.WithSchema(c.Schema))
	}

	return postgrest.NewClient(c.URL, opts...)
}
