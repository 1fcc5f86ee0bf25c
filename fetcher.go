package normdoc

import "context"

// Fetcher retrieves page markup from URLs.
type Fetcher interface {
	// Fetch performs a GET against url and returns the body decoded as UTF-8.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed or ctx is done.
	Wait(ctx context.Context, domain string) error
}
