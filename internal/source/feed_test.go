package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/render"
	"go.uber.org/zap"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Remote Jobs Feed</title>
    <item>
      <title>Acme Corp: Senior Go Developer</title>
      <link>https://feed.example/jobs/1</link>
      <description>&lt;p&gt;Remote role building APIs in Go.&lt;/p&gt;</description>
    </item>
    <item>
      <title>Product Designer</title>
      <link>https://feed.example/jobs/2</link>
      <description>Figma and design systems.</description>
    </item>
  </channel>
</rss>`

func newFeedAdapter(t *testing.T) (*feedAdapter, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleFeed))
	}))
	t.Cleanup(server.Close)

	return &feedAdapter{
		hc:      server.Client(),
		limiter: render.NewHostLimiter(100, 10),
		logger:  zap.NewNop(),
	}, server
}

func TestFeedAdapterParsesItems(t *testing.T) {
	adapter, server := newFeedAdapter(t)
	src := jobs.Source{Name: "Remote Feed", BaseURL: server.URL, Kind: jobs.KindFeed}

	listings, err := adapter.Fetch(context.Background(), src, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}

	first := listings[0]
	if first.Company != "Acme Corp" || first.Title != "Senior Go Developer" {
		t.Fatalf("colon convention not split: %+v", first)
	}
	if !first.Remote {
		t.Fatal("expected remote inferred from description")
	}
	if first.Description == "" || first.Description[0] == '<' {
		t.Fatalf("description should have HTML stripped: %q", first.Description)
	}

	second := listings[1]
	if second.Company != "Remote Feed" {
		t.Fatalf("items without a company should fall back to the source name, got %q", second.Company)
	}
}

func TestFeedAdapterKeywordFilter(t *testing.T) {
	adapter, server := newFeedAdapter(t)
	src := jobs.Source{Name: "Remote Feed", BaseURL: server.URL, Kind: jobs.KindFeed}

	listings, err := adapter.Fetch(context.Background(), src, Options{Keywords: []string{"designer"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 1 || listings[0].Title != "Product Designer" {
		t.Fatalf("expected only the designer item, got %+v", listings)
	}
}

func TestSplitFeedTitle(t *testing.T) {
	company, title := splitFeedTitle("Beta Labs: Data Analyst")
	if company != "Beta Labs" || title != "Data Analyst" {
		t.Fatalf("unexpected split: %q / %q", company, title)
	}

	company, title = splitFeedTitle("Standalone Title")
	if company != "" || title != "Standalone Title" {
		t.Fatalf("unexpected split without separator: %q / %q", company, title)
	}
}
