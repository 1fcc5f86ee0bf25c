// Package http implements normdoc.Fetcher over plain HTTP and serves the
// document query API.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/normdoc"
)

// DefaultFetchTimeout is the per-request timeout.
const DefaultFetchTimeout = 30 * time.Second

// DefaultMaxBodySize caps the number of bytes read from one response.
const DefaultMaxBodySize = 32 << 20

// DefaultHeaders is the browser-like header set sent with every request.
// Accept-Encoding is left to the transport, which negotiates and decodes gzip
// itself.
var DefaultHeaders = map[string]string{
	"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language":           "ru-RU,ru;q=0.8,en-US;q=0.5,en;q=0.3",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
}

// Ensure Fetcher implements normdoc.Fetcher at compile time.
var _ normdoc.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages with single HTTP GET requests. Retries are layered
// on top by crawl.RetryFetcher.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	transport   http.RoundTripper
	headers     map[string]string
	limiter     normdoc.DomainLimiter
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithHeaders replaces the request header set. Defaults to DefaultHeaders.
func WithHeaders(h map[string]string) Option {
	return func(f *Fetcher) {
		f.headers = h
	}
}

// WithLimiter rate limits requests per host.
func WithLimiter(l normdoc.DomainLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// WithTransport sets the round tripper used by the underlying client.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *Fetcher) {
		f.transport = rt
	}
}

// WithMaxBodySize caps the number of bytes read from a response.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		headers:     DefaultHeaders,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout:   f.timeout,
		Transport: f.transport,
	}

	return f
}

// Fetch retrieves the page at rawURL and returns its body decoded as UTF-8.
// Any status other than 2xx is an error.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return "", err
	}

	return decodeBody(body, resp.Header.Get("Content-Type"))
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
