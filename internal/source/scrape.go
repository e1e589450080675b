package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/render"
	"go.uber.org/zap"
)

const (
	defaultMaxPages    = 10
	maxListingsPerPage = 20
	maxSearchKeywords  = 3
)

// scrapeAdapter fetches browser-rendered boards through the rendering
// service and extracts listings from each returned page.
type scrapeAdapter struct {
	crawler render.Crawler
	logger  *zap.Logger
}

func (a *scrapeAdapter) Fetch(ctx context.Context, src jobs.Source, opts Options) ([]jobs.Listing, error) {
	searchURL := buildSearchURL(src, opts.Keywords)

	maxPages := src.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	result, err := a.crawler.StartAndWait(ctx, searchURL, maxPages, []string{"markdown", "html"})
	if err != nil {
		return nil, fmt.Errorf("crawl %s: %w", src.Name, err)
	}

	a.logger.Debug("crawl finished",
		zap.String("source", src.Name),
		zap.String("status", result.Status),
		zap.Int("pages", len(result.Pages)),
	)

	var listings []jobs.Listing
	for _, page := range result.Pages {
		if strings.TrimSpace(page.Content) == "" {
			continue
		}

		pageURL := page.SourceURL
		if pageURL == "" {
			pageURL = searchURL
		}

		var pageListings []jobs.Listing
		if isMarkdown(page.Content) {
			pageListings = ExtractMarkdown(page.Content, pageURL, src.Name)
		} else {
			pageListings = ExtractHTML(page.Content, pageURL, src.Name)
		}

		// Bound downstream scoring cost.
		if len(pageListings) > maxListingsPerPage {
			pageListings = pageListings[:maxListingsPerPage]
		}
		listings = append(listings, pageListings...)
	}

	return listings, nil
}

// buildSearchURL specializes the crawl target with the top search keywords
// when the source has a search template.
func buildSearchURL(src jobs.Source, keywords []string) string {
	if src.SearchTemplate == "" || len(keywords) == 0 {
		return src.BaseURL
	}

	top := keywords
	if len(top) > maxSearchKeywords {
		top = top[:maxSearchKeywords]
	}
	encoded := url.QueryEscape(strings.Join(top, " "))

	return strings.ReplaceAll(src.SearchTemplate, "{{KEYWORDS}}", encoded)
}

// isMarkdown distinguishes rendered markdown from raw HTML payloads.
func isMarkdown(content string) bool {
	return !strings.Contains(content, "<html") && !strings.Contains(content, "<!DOCTYPE")
}
