package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/render"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// apiAdapter calls a JSON endpoint directly and maps source-specific field
// names onto the normalized listing shape via the source's field map.
type apiAdapter struct {
	hc      *http.Client
	limiter *render.HostLimiter
	logger  *zap.Logger
}

func (a *apiAdapter) Fetch(ctx context.Context, src jobs.Source, opts Options) ([]jobs.Listing, error) {
	body, err := fetchBody(ctx, a.hc, a.limiter, src.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src.Name, err)
	}

	items, err := decodeItems(body)
	if err != nil {
		return nil, fmt.Errorf("parse %s response: %w", src.Name, err)
	}

	a.logger.Debug("api response", zap.String("source", src.Name), zap.Int("items", len(items)))

	var listings []jobs.Listing
	for _, item := range items {
		listing, err := mapListing(item, src)
		if err != nil || listing.Title == "" {
			continue
		}
		// The endpoint has no server-side search; filter client-side.
		if !matchesKeywords(listing.Title, listing.Description, opts.Keywords) {
			continue
		}
		listings = append(listings, listing)
	}

	return listings, nil
}

// decodeItems accepts both a bare array and the common {"jobs": [...]}
// envelope.
func decodeItems(body []byte) ([]map[string]any, error) {
	var items []map[string]any
	if err := json.Unmarshal(body, &items); err == nil {
		return items, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	for _, key := range []string{"jobs", "items", "results", "data"} {
		if raw, ok := envelope[key]; ok {
			if err := json.Unmarshal(raw, &items); err != nil {
				return nil, err
			}
			return items, nil
		}
	}

	return nil, fmt.Errorf("no listing array found in response")
}

// mapListing renames endpoint fields per the source's field map (for example
// position -> title, companyName -> company) and decodes the result.
func mapListing(item map[string]any, src jobs.Source) (jobs.Listing, error) {
	canonical := make(map[string]any, len(item))
	for key, value := range item {
		if mapped, ok := src.FieldMap[key]; ok {
			canonical[mapped] = value
			continue
		}
		canonical[strings.ToLower(key)] = value
	}

	var listing jobs.Listing
	cfg := &mapstructure.DecoderConfig{
		Result:           &listing,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return listing, err
	}
	if err := decoder.Decode(canonical); err != nil {
		return listing, err
	}

	listing.Title = strings.TrimSpace(listing.Title)
	listing.Company = strings.TrimSpace(listing.Company)
	listing.Source = src.Name
	if listing.URL == "" {
		listing.URL = src.BaseURL
	}
	if !listing.Remote && looksRemote(listing.Location+" "+listing.Description) {
		listing.Remote = true
	}

	return listing, nil
}
