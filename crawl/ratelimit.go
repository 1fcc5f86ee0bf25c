package crawl

import (
	"context"
	"sync"

	"github.com/fwojciec/normdoc"
	"golang.org/x/time/rate"
)

var _ normdoc.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter throttles upstream requests per host using token buckets.
// The document site gets its own bucket, so the listing and detail fetches
// of concurrent API calls share one politeness budget.
type DomainLimiter struct {
	limit rate.Limit
	burst int

	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

// NewDomainLimiter allows rps requests per second per host with no burst.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return NewDomainLimiterBurst(rps, 1)
}

// NewDomainLimiterBurst allows rps requests per second per host, of which up
// to burst may be issued back to back. A burst below 1 is treated as 1.
func NewDomainLimiterBurst(rps float64, burst int) *DomainLimiter {
	return &DomainLimiter{
		limit: rate.Limit(rps),
		burst: max(burst, 1),
		hosts: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a request to host is allowed, or returns the context's
// error if ctx ends first.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	return d.bucket(host).Wait(ctx)
}

func (d *DomainLimiter) bucket(host string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.hosts[host]
	if !ok {
		b = rate.NewLimiter(d.limit, d.burst)
		d.hosts[host] = b
	}
	return b
}
