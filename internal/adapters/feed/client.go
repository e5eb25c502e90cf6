package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// defaultTimeout caps a single poll request. The transport default is
// effectively unbounded, which a stuck endpoint would turn into a
// stalled poll loop.
const defaultTimeout = 10 * time.Second

// Client fetches the raw payload from the poll endpoint.
type Client struct {
	url  string
	http *http.Client
}

// ClientOption applies a configuration option to the Client.
type ClientOption func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient creates a Client polling url.
func NewClient(url string, opts ...ClientOption) *Client {
	c := &Client{
		url:  url,
		http: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch performs one poll and decodes the response. A transport or
// HTTP-status failure is returned as an error; a syntactically odd body
// is not (Decode classifies it instead).
func (c *Client) Fetch(ctx context.Context) (Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Payload{}, fmt.Errorf("build poll request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Payload{}, fmt.Errorf("poll %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Payload{}, fmt.Errorf("poll %s: %w (status %d)", c.url, ErrBadStatus, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Payload{}, fmt.Errorf("read poll response: %w", err)
	}
	return Decode(raw), nil
}
