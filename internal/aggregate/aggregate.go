// Package aggregate fans out to all configured sources concurrently, merges
// their listings, and deduplicates the result. A failing source contributes
// zero listings and never aborts its siblings.
package aggregate

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jobradar/jobradar/internal/cache"
	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/quota"
	"github.com/jobradar/jobradar/internal/source"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultCacheTTL = 2 * time.Hour

// Options narrows a collection run.
type Options struct {
	// IncludeSources keeps only sources whose name contains one of the
	// given fragments (case-insensitive). Empty means all sources.
	IncludeSources []string
	// Keywords steer search-capable sources and filter the rest.
	Keywords []string
}

// Adapters resolves the adapter for a source kind.
type Adapters interface {
	ForKind(kind jobs.Kind) (source.Adapter, error)
}

// Aggregator coordinates cache, quota, and adapters for a collection run.
type Aggregator struct {
	sources  []jobs.Source
	adapters Adapters
	cache    *cache.Cache
	quota    *quota.Tracker
	cacheTTL time.Duration
	logger   *zap.Logger
}

// New creates an aggregator over the configured sources. cacheTTL bounds how
// long fetched listings are reused; non-positive falls back to 2 hours.
func New(sources []jobs.Source, adapters Adapters, c *cache.Cache, q *quota.Tracker, cacheTTL time.Duration, logger *zap.Logger) *Aggregator {
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &Aggregator{
		sources:  sources,
		adapters: adapters,
		cache:    c,
		quota:    q,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Collect fetches all selected sources concurrently and returns the merged,
// deduplicated listings. Per-source failures are reported through progress
// and contribute nothing; Collect itself never fails.
func (a *Aggregator) Collect(ctx context.Context, progress jobs.ProgressFunc, opts Options) []jobs.Listing {
	selected := a.selectSources(opts.IncludeSources)

	progress.Report("[CRAWL] Collecting from %d sources...", len(selected))

	var mu sync.Mutex
	bySource := make(map[string][]jobs.Listing, len(selected))

	var g errgroup.Group
	for _, src := range selected {
		g.Go(func() error {
			listings := a.collectSource(ctx, src, progress, opts.Keywords)
			mu.Lock()
			bySource[src.Name] = listings
			mu.Unlock()
			// Failures are data here; never cancel sibling sources.
			return nil
		})
	}
	_ = g.Wait()

	// Merge in configured source order so dedup winners are deterministic.
	var merged []jobs.Listing
	for _, src := range selected {
		merged = append(merged, bySource[src.Name]...)
	}

	unique := jobs.Deduplicate(merged)
	progress.Report("[COMPLETE] Total unique jobs found: %d (from %d raw)", len(unique), len(merged))

	return unique
}

func (a *Aggregator) collectSource(ctx context.Context, src jobs.Source, progress jobs.ProgressFunc, keywords []string) []jobs.Listing {
	key := cache.Key(src.Name, map[string]string{
		"keywords": strings.Join(keywords, ","),
	})

	if listings, ok := a.cache.Get(key); ok {
		progress.Report("[CACHE] %s - using %d cached listings", src.Name, len(listings))
		a.logger.Debug("cache hit", zap.String("source", src.Name), zap.Int("listings", len(listings)))
		return listings
	}

	allowed, remaining := a.quota.Check(src.Name)
	if !allowed {
		progress.Report("[QUOTA] %s - daily quota exhausted, skipping", src.Name)
		a.logger.Info("quota exhausted", zap.String("source", src.Name))
		return nil
	}

	progress.Report("[CRAWL] Starting %s...", src.Name)

	adapter, err := a.adapters.ForKind(src.Kind)
	if err != nil {
		progress.Report("[ERROR] Failed to crawl %s: %v", src.Name, err)
		a.logger.Error("no adapter for source", zap.String("source", src.Name), zap.Error(err))
		return nil
	}

	listings, err := adapter.Fetch(ctx, src, source.Options{Keywords: keywords})
	if err != nil {
		progress.Report("[ERROR] Failed to crawl %s: %v", src.Name, err)
		a.logger.Error("source fetch failed", zap.String("source", src.Name), zap.Error(err))
		return nil
	}

	a.cache.Set(key, listings, a.cacheTTL)
	if err := a.quota.Increment(src.Name); err != nil {
		a.logger.Warn("recording quota usage", zap.String("source", src.Name), zap.Error(err))
	}

	progress.Report("[PARSE] Extracted %d jobs from %s", len(listings), src.Name)
	a.logger.Info("source fetched",
		zap.String("source", src.Name),
		zap.Int("listings", len(listings)),
		zap.Int("quota_remaining", remaining-1),
	)

	return listings
}

func (a *Aggregator) selectSources(include []string) []jobs.Source {
	if len(include) == 0 {
		return a.sources
	}

	var selected []jobs.Source
	for _, src := range a.sources {
		name := strings.ToLower(src.Name)
		for _, frag := range include {
			if strings.Contains(name, strings.ToLower(frag)) {
				selected = append(selected, src)
				break
			}
		}
	}
	return selected
}
