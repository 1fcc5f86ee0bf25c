package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/normdoc"
)

// Retry defaults.
const (
	DefaultAttempts   = 3
	DefaultRetryDelay = 2 * time.Second
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// RetryLogFunc is called after a failed attempt that will be retried.
// attempt is the 1-based number of the attempt that failed.
type RetryLogFunc func(url string, attempt int, err error)

// FetchWithRetryDelays calls fetch once, then once more after each delay
// while it keeps failing. It returns the last error when every attempt fails,
// or the context error if ctx ends while waiting.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger RetryLogFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if logger != nil {
			logger(url, attempt+1, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}

// Ensure RetryFetcher implements normdoc.Fetcher at compile time.
var _ normdoc.Fetcher = (*RetryFetcher)(nil)

// RetryFetcher retries a Fetcher with a fixed delay between attempts.
// Exhausted retries are reported as EFETCH carrying the URL and last cause.
type RetryFetcher struct {
	Fetcher  normdoc.Fetcher
	Attempts int
	Delay    time.Duration

	// OnRetry, if set, observes each failed attempt that is followed by
	// another one.
	OnRetry RetryLogFunc
}

// NewRetryFetcher wraps f with DefaultAttempts and DefaultRetryDelay.
func NewRetryFetcher(f normdoc.Fetcher) *RetryFetcher {
	return &RetryFetcher{
		Fetcher:  f,
		Attempts: DefaultAttempts,
		Delay:    DefaultRetryDelay,
	}
}

// Fetch retrieves url, retrying transport failures.
func (r *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}
	delays := make([]time.Duration, attempts-1)
	for i := range delays {
		delays[i] = r.Delay
	}

	html, err := FetchWithRetryDelays(ctx, url, r.Fetcher.Fetch, r.OnRetry, delays)
	if err != nil {
		return "", normdoc.Errorf(normdoc.EFETCH, "fetch failed after %d attempts: %w", attempts, err).WithURL(url)
	}
	return html, nil
}

// Close closes the wrapped fetcher.
func (r *RetryFetcher) Close() error {
	return r.Fetcher.Close()
}
