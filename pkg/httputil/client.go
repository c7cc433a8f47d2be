package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/phrasenet/pkg/observability"
)

const (
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 60 * time.Second
	// DefaultAttempts is the number of tries per request.
	DefaultAttempts = 3
	// DefaultBackoff is the first delay between tries.
	DefaultBackoff = time.Second
)

var (
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for transport failures and unexpected statuses.
	ErrNetwork = errors.New("network error")
)

// Client sends JSON requests to a single service.
type Client struct {
	base     string
	http     *http.Client
	headers  map[string]string
	attempts int
	backoff  time.Duration
}

// NewClient creates a Client for the service at baseURL. Headers are
// applied to every request; pass nil if none are needed.
func NewClient(baseURL string, headers map[string]string) *Client {
	return &Client{
		base:     strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: DefaultTimeout},
		headers:  headers,
		attempts: DefaultAttempts,
		backoff:  DefaultBackoff,
	}
}

// WithHTTPClient replaces the underlying transport client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// WithRetry sets the number of attempts and the initial backoff.
func (c *Client) WithRetry(attempts int, backoff time.Duration) *Client {
	c.attempts, c.backoff = attempts, backoff
	return c
}

// BaseURL returns the service URL without a trailing slash.
func (c *Client) BaseURL() string { return c.base }

// GetJSON performs a GET on path and decodes the JSON response into v.
func (c *Client) GetJSON(ctx context.Context, path string, v any) error {
	return c.do(ctx, http.MethodGet, path, nil, v)
}

// PostJSON encodes in as the request body, POSTs it to path, and decodes the
// JSON response into out.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, v any) error {
	return Retry(ctx, c.attempts, c.backoff, func() error {
		return c.once(ctx, method, path, body, v)
	})
}

func (c *Client) once(ctx context.Context, method, path string, body []byte, v any) error {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, r)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, val := range c.headers {
		req.Header.Set(k, val)
	}

	host := hostOf(c.base)
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, method, host, path, err)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp); err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500 || code == http.StatusTooManyRequests:
		return &RetryableError{
			Err:   fmt.Errorf("%w: status %d", ErrNetwork, code),
			After: retryAfter(resp.Header.Get("Retry-After"), time.Now()),
		}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

func hostOf(base string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	return u.Host
}
