// Package source contains one adapter per source kind. Every adapter turns a
// raw payload from an external job board into normalized listings; extraction
// itself is kept in pure functions so each format can be tested in isolation.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/render"
	"go.uber.org/zap"
)

// Options narrows a fetch. Keywords drive search-capable sources server-side
// and are applied as a client-side filter everywhere else.
type Options struct {
	Keywords []string
}

// Adapter fetches and normalizes listings for a single source.
type Adapter interface {
	Fetch(ctx context.Context, src jobs.Source, opts Options) ([]jobs.Listing, error)
}

// Set holds one adapter per source kind.
type Set struct {
	scrape Adapter
	api    Adapter
	feed   Adapter
}

// NewSet wires the adapters with their collaborators. The HTTP client and
// host limiter are shared by the api and feed adapters; scrape sources go
// through the rendering service.
func NewSet(crawler render.Crawler, hc *http.Client, limiter *render.HostLimiter, logger *zap.Logger) *Set {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Set{
		scrape: &scrapeAdapter{crawler: crawler, logger: logger},
		api:    &apiAdapter{hc: hc, limiter: limiter, logger: logger},
		feed:   &feedAdapter{hc: hc, limiter: limiter, logger: logger},
	}
}

// ForKind returns the adapter handling the given source kind.
func (s *Set) ForKind(kind jobs.Kind) (Adapter, error) {
	switch kind {
	case jobs.KindScrape:
		return s.scrape, nil
	case jobs.KindAPI:
		return s.api, nil
	case jobs.KindFeed:
		return s.feed, nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", kind)
	}
}

func fetchBody(ctx context.Context, hc *http.Client, limiter *render.HostLimiter, url string) ([]byte, error) {
	if limiter != nil {
		if err := limiter.WaitURL(ctx, url); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "jobradar/1.0")
	req.Header.Set("Accept", "application/json, application/rss+xml, application/xml, text/xml")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: bad status %s", url, resp.Status)
	}

	return io.ReadAll(resp.Body)
}
