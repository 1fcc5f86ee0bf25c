package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/normdoc"
	"github.com/fwojciec/normdoc/crawl"
	"github.com/fwojciec/normdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	t.Run("returns first success without retrying", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(context.Context, string) (string, error) {
			calls++
			return "<html></html>", nil
		}

		html, err := crawl.FetchWithRetryDelays(context.Background(), "https://meganorm.ru/a", fetch, nil, []time.Duration{time.Millisecond})

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("logs each retried attempt", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(context.Context, string) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("connection reset")
			}
			return "ok", nil
		}

		var logged []int
		logger := func(url string, attempt int, err error) {
			assert.Equal(t, "https://meganorm.ru/a", url)
			assert.EqualError(t, err, "connection reset")
			logged = append(logged, attempt)
		}

		html, err := crawl.FetchWithRetryDelays(context.Background(), "https://meganorm.ru/a", fetch, logger, []time.Duration{time.Millisecond, time.Millisecond})

		require.NoError(t, err)
		assert.Equal(t, "ok", html)
		assert.Equal(t, []int{1, 2}, logged)
	})

	t.Run("returns last error when attempts are exhausted", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(context.Context, string) (string, error) {
			calls++
			return "", errors.New("HTTP 503")
		}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://meganorm.ru/a", fetch, nil, []time.Duration{time.Millisecond})

		require.EqualError(t, err, "HTTP 503")
		assert.Equal(t, 2, calls)
	})

	t.Run("stops waiting when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetch := func(context.Context, string) (string, error) {
			cancel()
			return "", errors.New("timeout")
		}

		_, err := crawl.FetchWithRetryDelays(ctx, "https://meganorm.ru/a", fetch, nil, []time.Duration{time.Hour})

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestRetryFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("retries up to the attempt limit", func(t *testing.T) {
		t.Parallel()

		calls := 0
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				calls++
				return "", errors.New("connection refused")
			},
		}

		f := crawl.NewRetryFetcher(inner)
		f.Delay = time.Millisecond

		_, err := f.Fetch(context.Background(), "https://meganorm.ru/mega_doc/fire/prikaz/a.html")

		require.Error(t, err)
		assert.Equal(t, crawl.DefaultAttempts, calls)
		assert.Equal(t, normdoc.EFETCH, normdoc.ErrorCode(err))
		assert.Equal(t, "https://meganorm.ru/mega_doc/fire/prikaz/a.html", normdoc.ErrorURL(err))
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("reports retries through the hook", func(t *testing.T) {
		t.Parallel()

		calls := 0
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				calls++
				if calls == 1 {
					return "", errors.New("timeout")
				}
				return "page", nil
			},
		}

		var attempts []int
		f := &crawl.RetryFetcher{
			Fetcher:  inner,
			Attempts: 3,
			Delay:    time.Millisecond,
			OnRetry: func(_ string, attempt int, _ error) {
				attempts = append(attempts, attempt)
			},
		}

		html, err := f.Fetch(context.Background(), "https://meganorm.ru/a")

		require.NoError(t, err)
		assert.Equal(t, "page", html)
		assert.Equal(t, []int{1}, attempts)
	})

	t.Run("treats non-positive attempts as one", func(t *testing.T) {
		t.Parallel()

		calls := 0
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				calls++
				return "", errors.New("down")
			},
		}

		f := &crawl.RetryFetcher{Fetcher: inner}

		_, err := f.Fetch(context.Background(), "https://meganorm.ru/a")

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("delegates close", func(t *testing.T) {
		t.Parallel()

		closed := false
		inner := &mock.Fetcher{
			CloseFn: func() error {
				closed = true
				return nil
			},
		}

		require.NoError(t, crawl.NewRetryFetcher(inner).Close())
		assert.True(t, closed)
	})
}
