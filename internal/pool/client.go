package pool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"loramgr/internal/metrics"
	"loramgr/pkg/types"
)

// PoolPath is the resolver route the client posts to.
const PoolPath = "/api/lm/loras/pool"

const (
	defaultTimeout   = 10 * time.Second
	maxResponseBytes = 32 << 20
)

// Client is the HTTP Pool Resolver client. One FetchPool call is exactly one
// request/response exchange.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout sets the per-request timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d, Transport: c.http.Transport}
		}
	}
}

// WithLogger installs a structured logger.
func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) { c.log = l }
}

// NewClient returns a client for the resolver at baseURL, e.g. http://127.0.0.1:8188.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		log:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// FetchPool posts req to the resolver. Transport, status and decode failures
// are logged, counted and normalized to the empty pool.
func (c *Client) FetchPool(ctx context.Context, req types.PoolRequest) types.PoolResponse {
	resp, reason, err := c.fetch(ctx, req)
	if err != nil {
		c.log.Warn().Err(err).Str("reason", reason).Str("url", c.baseURL+PoolPath).Msg("pool fetch failed")
		metrics.ResolverFailure(reason)
		return types.EmptyPool()
	}
	return resp
}

func (c *Client) fetch(ctx context.Context, req types.PoolRequest) (types.PoolResponse, string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return types.PoolResponse{}, "encode", fmt.Errorf("encode request: %w", err)
	}
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+PoolPath, bytes.NewReader(body))
	if err != nil {
		return types.PoolResponse{}, "request", fmt.Errorf("build request: %w", err)
	}
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("Accept", "application/json")
	hresp, err := c.http.Do(hreq)
	if err != nil {
		return types.PoolResponse{}, "transport", fmt.Errorf("post %s: %w", PoolPath, err)
	}
	defer hresp.Body.Close()
	if hresp.StatusCode != http.StatusOK {
		// drain a little so the connection can be reused
		_, _ = io.CopyN(io.Discard, hresp.Body, 4<<10)
		return types.PoolResponse{}, "status", fmt.Errorf("resolver status %d", hresp.StatusCode)
	}
	var out types.PoolResponse
	if err := json.NewDecoder(io.LimitReader(hresp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return types.PoolResponse{}, "decode", fmt.Errorf("decode response: %w", err)
	}
	if out.Items == nil {
		out.Items = []types.PoolItem{}
	}
	if out.TotalCount < len(out.Items) {
		out.TotalCount = len(out.Items)
	}
	return out, "", nil
}
