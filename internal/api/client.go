package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Doer executes a single HTTP request. *http.Client satisfies it; tests
// substitute an in-process adapter so no socket is needed.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenSource supplies the bearer token for authenticated requests and is
// invalidated when the server rejects the token.
type TokenSource interface {
	Token() string
	Invalidate()
}

// APIError is a non-2xx response decoded from the server's error envelope.
// Message carries the server's user-facing text verbatim.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Detail  string `json:"error,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: request failed with status %d", e.Status)
}

// Config holds the shared request-layer settings.
type Config struct {
	BaseURL   string // e.g. "http://localhost:4001/api"
	ClientKey string // sent as X-Client-Key on every request
	Tokens    TokenSource
	HTTPDoer  Doer // optional; defaults to an http.Client with a timeout
}

// Client is the shared request layer all resource clients go through. It
// attaches the client key and bearer token, encodes/decodes JSON bodies, and
// turns error responses into *APIError.
type Client struct {
	baseURL   string
	clientKey string
	tokens    TokenSource
	doer      Doer
}

// NewClient creates the shared request layer.
func NewClient(cfg Config) *Client {
	doer := cfg.HTTPDoer
	if doer == nil {
		doer = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		clientKey: cfg.ClientKey,
		tokens:    cfg.Tokens,
		doer:      doer,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do performs one request. out may be nil when the caller only needs the ack.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.clientKey != "" {
		req.Header.Set("X-Client-Key", c.clientKey)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		// Best effort: keep the status even when the envelope is not JSON.
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		if resp.StatusCode == http.StatusUnauthorized && c.tokens != nil {
			c.tokens.Invalidate()
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
