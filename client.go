package fetch

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Client executes fetches. It is safe for concurrent use; each Fetch call
// owns its own state and only the engine's connection pool is shared.
type Client struct {
	engine Engine
	logger *zap.Logger
}

// NewClient creates a new fetch client.
//
// Example:
//
//	client := fetch.NewClient()
//	resp, err := client.Fetch(ctx, "https://example.com/")
func NewClient(opts ...ClientOption) *Client {
	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	engine := cfg.engine
	if engine == nil {
		rt := cfg.transport
		if rt == nil {
			rt = defaultTransport()
		}
		engine = &netEngine{rt: rt}
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		engine: engine,
		logger: logger,
	}
}

// Engine returns the underlying engine.
// This can be useful for advanced configuration or testing.
func (c *Client) Engine() Engine {
	return c.engine
}

var (
	defaultClient     *Client
	defaultClientOnce sync.Once
)

// Fetch executes a fetch with the package's default client.
func Fetch(ctx context.Context, input any, opts ...RequestOption) (*Response, error) {
	defaultClientOnce.Do(func() {
		defaultClient = NewClient()
	})
	return defaultClient.Fetch(ctx, input, opts...)
}
