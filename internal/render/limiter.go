package render

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter paces outbound requests per hostname so aggressive boards do
// not see request bursts from parallel source workers.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewHostLimiter creates a limiter allowing reqPerSec requests with the given
// burst per host.
func NewHostLimiter(reqPerSec float64, burst int) *HostLimiter {
	if reqPerSec <= 0 {
		reqPerSec = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(reqPerSec),
		burst:    burst,
	}
}

// WaitURL blocks until a request to the given URL's host is allowed, or the
// context is done.
func (hl *HostLimiter) WaitURL(ctx context.Context, raw string) error {
	host := "_"
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		host = u.Host
	}
	return hl.limiterFor(host).Wait(ctx)
}

func (hl *HostLimiter) limiterFor(host string) *rate.Limiter {
	hl.mu.Lock()
	defer hl.mu.Unlock()

	if lim, ok := hl.limiters[host]; ok {
		return lim
	}
	lim := rate.NewLimiter(hl.limit, hl.burst)
	hl.limiters[host] = lim
	return lim
}
