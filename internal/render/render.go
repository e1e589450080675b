// Package render talks to the external rendering/crawl service that turns
// browser-rendered job boards into markdown or HTML pages. Its internals are
// out of scope here; a transport or timeout failure is reported to the caller
// as a plain adapter error.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	crawlPath      = "/v1/crawl"
	defaultTimeout = 120 * time.Second
	userAgent      = "jobradar/1.0"
)

// Page is one rendered page from a crawl.
type Page struct {
	Content   string `json:"content"`
	SourceURL string `json:"sourceUrl"`
}

// CrawlResult is the settled outcome of a crawl request.
type CrawlResult struct {
	Status string `json:"status"`
	Pages  []Page `json:"pages"`
}

// Crawler starts a crawl and waits for it to settle.
type Crawler interface {
	StartAndWait(ctx context.Context, url string, maxPages int, formats []string) (*CrawlResult, error)
}

// Client is the HTTP implementation of Crawler.
type Client struct {
	APIURL     string
	HTTPClient *http.Client

	apiKey  string
	limiter *HostLimiter
	logger  *zap.Logger
}

// NewClient creates a render service client. reqPerSec paces requests against
// the service itself.
func NewClient(apiURL, apiKey string, reqPerSec float64, logger *zap.Logger) *Client {
	return &Client{
		APIURL: apiURL,
		apiKey: apiKey,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: NewHostLimiter(reqPerSec, 1),
		logger:  logger,
	}
}

type crawlRequest struct {
	URL      string   `json:"url"`
	MaxPages int      `json:"maxPages"`
	Formats  []string `json:"formats"`
}

// StartAndWait submits a crawl for url and blocks until the service reports a
// settled result. The service enforces the page ceiling; formats selects the
// page representations ("markdown", "html").
func (c *Client) StartAndWait(ctx context.Context, url string, maxPages int, formats []string) (*CrawlResult, error) {
	if err := c.limiter.WaitURL(ctx, c.APIURL); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(crawlRequest{URL: url, MaxPages: maxPages, Formats: formats})
	if err != nil {
		return nil, fmt.Errorf("marshal crawl request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL+crawlPath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.logger.Debug("crawl request", zap.String("url", url), zap.Int("max_pages", maxPages))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("crawl %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("crawl %s: bad status %s: %s", url, resp.Status, body)
	}

	var result CrawlResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode crawl result: %w", err)
	}

	c.logger.Debug("crawl settled",
		zap.String("url", url),
		zap.String("status", result.Status),
		zap.Int("pages", len(result.Pages)),
	)

	return &result, nil
}
