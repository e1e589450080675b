package source

import (
	"strings"
	"testing"
)

const sampleMarkdown = `# Open Roles

[Senior Backend Engineer](/jobs/123)
Acme Corp
Remote - Work from anywhere in the US.
We are building distributed systems in Go and need help scaling our platform.

[Frontend Developer](https://jobs.example.com/456)
Beta Labs
Location: Berlin
Join a small team shipping a React product.

### Not a role heading

Some unrelated paragraph text without any openings.
`

func TestExtractMarkdownParsesLinkedListings(t *testing.T) {
	listings := ExtractMarkdown(sampleMarkdown, "https://board.example.com/jobs", "Startup Board")

	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d: %+v", len(listings), listings)
	}

	first := listings[0]
	if first.Title != "Senior Backend Engineer" {
		t.Fatalf("unexpected title: %q", first.Title)
	}
	if first.Company != "Acme Corp" {
		t.Fatalf("unexpected company: %q", first.Company)
	}
	if first.URL != "https://board.example.com/jobs/123" {
		t.Fatalf("relative link not resolved: %q", first.URL)
	}
	if !first.Remote {
		t.Fatal("expected remote flag from context window")
	}
	if first.Source != "Startup Board" {
		t.Fatalf("unexpected source: %q", first.Source)
	}

	second := listings[1]
	if second.URL != "https://jobs.example.com/456" {
		t.Fatalf("absolute link should be kept: %q", second.URL)
	}
	if !strings.Contains(second.Location, "Berlin") {
		t.Fatalf("expected Berlin location, got %q", second.Location)
	}
}

func TestExtractMarkdownRequiresTitleAndCompany(t *testing.T) {
	// A title with no plausible company line nearby must not be emitted.
	content := "## DevOps Engineer\n# Careers\n# Teams\n# Benefits\n# Offices\n# Culture\n## Senior QA Engineer\nGamma GmbH\nTest things.\n"
	listings := ExtractMarkdown(content, "https://board.example.com", "Board")

	if len(listings) != 1 {
		t.Fatalf("expected only the complete listing, got %d", len(listings))
	}
	if listings[0].Title != "Senior QA Engineer" || listings[0].Company != "Gamma GmbH" {
		t.Fatalf("unexpected listing: %+v", listings[0])
	}
}

func TestExtractMarkdownFlushesLastListing(t *testing.T) {
	content := "[Data Analyst](/a/1)\nDelta Inc\nCrunch numbers all day."
	listings := ExtractMarkdown(content, "https://board.example.com", "Board")

	if len(listings) != 1 {
		t.Fatalf("expected trailing listing to be flushed, got %d", len(listings))
	}
}

func TestExtractMarkdownTruncatesDescription(t *testing.T) {
	long := strings.Repeat("scale systems ", 40)
	content := "[Platform Engineer](/p/1)\nEpsilon\n" + long
	listings := ExtractMarkdown(content, "https://board.example.com", "Board")

	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(listings))
	}
	if got := len([]rune(listings[0].Description)); got > maxDescriptionLen {
		t.Fatalf("description not truncated: %d runes", got)
	}
}

func TestIsJobTitle(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"Senior Backend Engineer", true},
		{"Product Manager", true},
		{"qa automation", true},
		{"About our company", false},
		{"Pricing", false},
	}

	for _, tc := range cases {
		if got := IsJobTitle(tc.text); got != tc.want {
			t.Fatalf("IsJobTitle(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}
