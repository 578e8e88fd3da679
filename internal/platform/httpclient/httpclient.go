// Package httpclient provides the shared HTTP client used by discovery and
// validation. It carries a fixed browser identity (the platform blocks
// obvious bots), per-request timeouts, optional rate limiting and an
// injectable transport for tests.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"linkscout/internal/platform/errors"
	"linkscout/internal/platform/logx"
	"linkscout/internal/platform/rate"
)

// Client wraps http.Client with the identity headers and rate limiting the
// pipeline needs. A single Error result is final, so there is no retry layer;
// failed links are re-submitted by the caller as a new batch if desired.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      logx.Logger
	config      Config
}

// Config holds the configuration for the HTTP client.
type Config struct {
	// Timeout is the request timeout duration.
	// Default: 10 seconds
	Timeout time.Duration

	// UserAgent is the impersonated browser identity sent with every request.
	UserAgent string

	// AcceptLanguage is the language preference header.
	AcceptLanguage string

	// RateLimit is the maximum requests per second.
	// 0 means no rate limiting.
	RateLimit float64

	// RateLimitBurst is the burst size for rate limiting.
	RateLimitBurst int

	// Transport overrides the underlying round tripper. Nil uses
	// http.DefaultTransport. Tests inject a mock transport here.
	Transport http.RoundTripper

	// FollowRedirects controls redirect following. The validator relies on
	// the final resolved URL, so this defaults to true with the library's
	// standard 10-hop limit.
	FollowRedirects bool
}

// DefaultConfig returns the default configuration: a desktop Chrome identity
// with an English language preference, matching what the invite pages are
// served to real users with.
func DefaultConfig() Config {
	return Config{
		Timeout:         10 * time.Second,
		UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		AcceptLanguage:  "en-US,en;q=0.9",
		RateLimit:       0,
		RateLimitBurst:  1,
		FollowRedirects: true,
	}
}

// New creates a new HTTP client with the given configuration.
func New(config Config, logger logx.Logger) *Client {
	def := DefaultConfig()
	if config.Timeout == 0 {
		config.Timeout = def.Timeout
	}
	if config.UserAgent == "" {
		config.UserAgent = def.UserAgent
	}
	if config.AcceptLanguage == "" {
		config.AcceptLanguage = def.AcceptLanguage
	}
	if config.RateLimitBurst == 0 {
		config.RateLimitBurst = 1
	}

	httpClient := &http.Client{
		Timeout:   config.Timeout,
		Transport: config.Transport,
	}
	if !config.FollowRedirects {
		httpClient.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var rateLimiter *rate.Limiter
	if config.RateLimit > 0 {
		rateLimiter = rate.New(config.RateLimit, config.RateLimitBurst)
	}

	return &Client{
		httpClient:  httpClient,
		rateLimiter: rateLimiter,
		logger:      logger.With("component", "httpclient"),
		config:      config,
	}
}

// Request performs an HTTP request with the fixed identity headers.
func (c *Client) Request(ctx context.Context, method, url string, headers map[string]string) (*http.Response, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "rate limit wait failed")
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create request for %s %s", method, url)
	}

	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept-Language", c.config.AcceptLanguage)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.Debug("HTTP request failed",
			"method", method,
			"url", url,
			"error", err.Error(),
			"duration_ms", duration.Milliseconds(),
		)
		return nil, err
	}

	c.logger.Debug("HTTP response received",
		"method", method,
		"url", url,
		"status", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
	)

	return resp, nil
}

// Get performs a GET request with the fixed identity headers.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	return c.Request(ctx, http.MethodGet, url, nil)
}

// Head performs a HEAD request, used for lightweight existence probes.
func (c *Client) Head(ctx context.Context, url string) (*http.Response, error) {
	return c.Request(ctx, http.MethodHead, url, nil)
}

// ReadBody reads the response body and closes it.
func ReadBody(resp *http.Response) ([]byte, error) {
	if resp == nil {
		return nil, errors.New("response is nil")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	return body, nil
}

// CheckStatus validates the HTTP status code and returns an error if it's not successful.
func CheckStatus(resp *http.Response) error {
	if resp == nil {
		return errors.New("response is nil")
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return errors.ErrRateLimit
	case http.StatusNotFound:
		return errors.ErrNotFound
	case http.StatusServiceUnavailable, http.StatusGatewayTimeout, http.StatusBadGateway:
		return errors.ErrServiceUnavailable
	default:
		return errors.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}
}

// String returns a human-readable representation of the client configuration.
func (c *Client) String() string {
	return fmt.Sprintf("HTTPClient{timeout=%s, rate_limit=%.1f/s}",
		c.config.Timeout,
		c.config.RateLimit,
	)
}
