// Package http provides the bounded HTTP executor for Brightcove API traffic.
// It enforces a global concurrency ceiling across all outstanding requests and
// interprets upstream status codes into success, absence, and error outcomes.
package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// DefaultConcurrentRequestLimit is the ceiling on simultaneously in-flight
// requests when none is configured.
const DefaultConcurrentRequestLimit = 20

// Client executes HTTP requests through a fixed-size concurrency gate.
// Requests beyond the limit queue in submission order; there is no retrying
// and no reordering.
type Client struct {
	base    *http.Client
	config  *Config
	gate    *semaphore.Weighted
	limiter *rate.Limiter
}

// Config holds executor configuration.
type Config struct {
	// Timeout for individual HTTP requests
	Timeout time.Duration

	// ConcurrentRequestLimit caps simultaneously in-flight requests
	// (default: DefaultConcurrentRequestLimit)
	ConcurrentRequestLimit int

	// RequestsPerSecond optionally rate-shapes admitted requests with a token
	// bucket. 0 disables rate shaping; the concurrency gate still applies.
	RequestsPerSecond float64

	// UserAgent for HTTP requests
	UserAgent string

	// Transport configures the connection pool
	Transport TransportConfig
}

// TransportConfig configures the HTTP transport (connection pooling).
type TransportConfig struct {
	// MaxIdleConns is the maximum number of idle connections across all hosts.
	// Default: 20
	MaxIdleConns int

	// MaxIdleConnsPerHost is the maximum idle connections per host.
	// Default: 10
	MaxIdleConnsPerHost int

	// IdleConnTimeout is the maximum amount of time an idle connection can remain open.
	// Default: 90 seconds
	IdleConnTimeout time.Duration

	// ForceAttemptHTTP2 forces HTTP/2 for connections to servers that don't explicitly support it.
	// Default: true
	ForceAttemptHTTP2 bool
}

// DefaultConfig returns sensible defaults for executor configuration.
func DefaultConfig() *Config {
	return &Config{
		Timeout:                30 * time.Second,
		ConcurrentRequestLimit: DefaultConcurrentRequestLimit,
		UserAgent:              "bcsync/1.0",
		Transport:              DefaultTransportConfig(),
	}
}

// DefaultTransportConfig returns sensible defaults for HTTP transport configuration.
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}
}

// New creates a new executor with the given configuration.
func New(cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	limit := cfg.ConcurrentRequestLimit
	if limit <= 0 {
		limit = DefaultConcurrentRequestLimit
	}

	transport := &http.Transport{
		MaxIdleConns:        cfg.Transport.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.Transport.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.Transport.IdleConnTimeout,
		ForceAttemptHTTP2:   cfg.Transport.ForceAttemptHTTP2,
	}

	c := &Client{
		base: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		config: cfg,
		gate:   semaphore.NewWeighted(int64(limit)),
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return c
}

// Request describes one upstream HTTP request.
type Request struct {
	// Method is the HTTP method; defaults to GET when empty.
	Method string
	// URL is the absolute request URL.
	URL string
	// Query is appended to the URL's query string.
	Query url.Values
	// Headers are set on the request verbatim.
	Headers map[string]string
	// Body is the request body, or nil.
	Body io.Reader
}

// Result is the interpreted outcome of a successfully executed request.
type Result struct {
	// StatusCode is the HTTP status code (2xx or 404).
	StatusCode int
	// Header is the response header.
	Header http.Header
	// Found is false when the upstream answered 404. Absence is not an error.
	Found bool
	// Body is the raw JSON body. Nil on 404 and 204.
	Body json.RawMessage
}

// Do executes a request through the concurrency gate and interprets the
// response. When out is non-nil and the response carries a JSON body, the body
// is unmarshaled into it.
//
// Interpretation rules:
//   - 404: Result.Found is false, no error
//   - 204: empty success, Result.Body is nil
//   - other non-2xx: *UpstreamError
//   - 2xx non-JSON content type: *ContentTypeError
//   - 2xx JSON with empty body: ErrEmptyResponse
//   - 2xx JSON that fails to decode: *ParseError
//   - no response at all: *TransportError
func (c *Client) Do(ctx context.Context, req Request, out any) (*Result, error) {
	if err := c.gate.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.gate.Release(1)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	urlStr := req.URL
	if len(req.Query) > 0 {
		sep := "?"
		if strings.Contains(urlStr, "?") {
			sep = "&"
		}
		urlStr += sep + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, urlStr, req.Body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("User-Agent", c.config.UserAgent)
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.base.Do(httpReq)
	if err != nil {
		return nil, &TransportError{URL: urlStr, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &Result{StatusCode: resp.StatusCode, Header: resp.Header, Found: false}, nil

	case resp.StatusCode == http.StatusNoContent:
		return &Result{StatusCode: resp.StatusCode, Header: resp.Header, Found: true}, nil

	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(resp.Body)
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       body,
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if !isJSONContentType(contentType) {
		return nil, &ContentTypeError{ContentType: contentType}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: urlStr, Err: err}
	}
	if len(body) == 0 {
		return nil, ErrEmptyResponse
	}

	if out == nil {
		out = &json.RawMessage{}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return nil, &ParseError{Err: err}
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Found:      true,
		Body:       body,
	}, nil
}

// isJSONContentType reports whether a Content-Type header value denotes JSON,
// including suffixed types like application/hal+json.
func isJSONContentType(contentType string) bool {
	mediaType := contentType
	if idx := strings.Index(mediaType, ";"); idx != -1 {
		mediaType = mediaType[:idx]
	}
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	return mediaType == "application/json" ||
		strings.HasSuffix(mediaType, "+json") ||
		mediaType == "text/json"
}

// Close releases idle connections held by the executor.
func (c *Client) Close() error {
	if c.base != nil {
		c.base.CloseIdleConnections()
	}
	return nil
}
