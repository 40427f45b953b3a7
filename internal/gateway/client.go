package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is the production gateway host.
	DefaultBaseURL = "https://ai.nirmaker.com"

	// DefaultEmbeddingModel computes utterance embeddings for routing.
	DefaultEmbeddingModel = "mistral/mistral-embed"

	// MaxBodySize limits how much response body we read (1MB).
	// Gateway error pages can be arbitrarily large; we never need more.
	MaxBodySize = 1 * 1024 * 1024

	// maxErrorRender bounds the body rendering in error messages.
	maxErrorRender = 500

	defaultTimeout = 30 * time.Second
)

// ClientConfig configures a gateway client.
type ClientConfig struct {
	// BaseURL is the gateway host. Empty means DefaultBaseURL.
	BaseURL string

	// APIKey is sent as a bearer token on every call.
	APIKey string

	// Timeout for each request/response cycle. Zero means 30s.
	Timeout time.Duration

	// Logger for request tracing. Nil means the global logger.
	Logger *zerolog.Logger
}

// Client performs single synchronous request/response cycles against the
// gateway admin API. It holds no state between calls.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a gateway client with defaults applied.
func NewClient(cfg *ClientConfig) *Client {
	if cfg == nil {
		cfg = &ClientConfig{}
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	logger := zlog.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
		log:     logger.With().Str("component", "gateway").Logger(),
	}
}

// BaseURL returns the configured gateway host.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do performs one call and decodes the response with the best-effort
// policy. Transport faults come back wrapped with the gateway URL so the
// user sees an actionable message instead of a bare dial error.
func (c *Client) do(ctx context.Context, method, path string, payload any) (*Result, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot reach %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", c.baseURL, err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("gateway call")

	return &Result{Status: resp.StatusCode, Body: decodeBody(data)}, nil
}
