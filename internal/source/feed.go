package source

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/render"
	"go.uber.org/zap"
)

// feedAdapter parses RSS/XML feeds. Many remote-work feeds publish items
// titled "Company: Job Title"; the colon convention is split into separate
// fields when present.
type feedAdapter struct {
	hc      *http.Client
	limiter *render.HostLimiter
	logger  *zap.Logger
}

type rssDocument struct {
	Channel struct {
		Title string    `xml:"title"`
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
}

func (a *feedAdapter) Fetch(ctx context.Context, src jobs.Source, opts Options) ([]jobs.Listing, error) {
	body, err := fetchBody(ctx, a.hc, a.limiter, src.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src.Name, err)
	}

	items, err := parseFeedItems(body)
	if err != nil {
		return nil, fmt.Errorf("parse %s feed: %w", src.Name, err)
	}

	a.logger.Debug("feed items", zap.String("source", src.Name), zap.Int("items", len(items)))

	var listings []jobs.Listing
	for _, item := range items {
		company, title := splitFeedTitle(item.Title)
		if title == "" {
			continue
		}
		if company == "" {
			company = src.Name
		}

		description := truncate(stripHTMLTags(item.Description), maxDescriptionLen)
		if !matchesKeywords(title, description, opts.Keywords) {
			continue
		}

		link := strings.TrimSpace(item.Link)
		if link == "" {
			link = src.BaseURL
		}

		listings = append(listings, jobs.Listing{
			Title:       title,
			Company:     company,
			URL:         link,
			Description: description,
			Source:      src.Name,
			Remote:      looksRemote(item.Title + " " + item.Description),
			Location:    extractLocation(item.Description),
		})
	}

	return listings, nil
}

func parseFeedItems(body []byte) ([]rssItem, error) {
	var doc rssDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc.Channel.Items, nil
}

// splitFeedTitle separates the "Company: Title" convention. Titles without a
// colon separator are returned as-is with no company.
func splitFeedTitle(raw string) (company, title string) {
	raw = strings.TrimSpace(raw)
	if company, title, ok := strings.Cut(raw, ": "); ok {
		return strings.TrimSpace(company), strings.TrimSpace(title)
	}
	return "", raw
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

func stripHTMLTags(s string) string {
	return strings.TrimSpace(strings.Join(strings.Fields(tagRe.ReplaceAllString(s, " ")), " "))
}
