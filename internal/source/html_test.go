package source

import (
	"testing"
)

func TestExtractHTMLAnchorWrappedHeadings(t *testing.T) {
	content := `<html><body>
	<a href="/careers/42"><h3>Backend Engineer</h3><span>Acme Corp</span></a>
	<a href="https://other.example/7"><h3>Staff Frontend Developer</h3><span>Beta Labs</span></a>
	<a href="/about"><h3>Our Story</h3></a>
	</body></html>`

	listings := ExtractHTML(content, "https://board.example.com/jobs", "Startup Board")

	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d: %+v", len(listings), listings)
	}
	if listings[0].URL != "https://board.example.com/careers/42" {
		t.Fatalf("relative href not resolved: %q", listings[0].URL)
	}
	if listings[0].Company != "Acme Corp" {
		t.Fatalf("unexpected company: %q", listings[0].Company)
	}
	if listings[1].URL != "https://other.example/7" {
		t.Fatalf("absolute href should be kept: %q", listings[1].URL)
	}
}

func TestExtractHTMLFallsBackToBareHeadings(t *testing.T) {
	content := `<html><body>
	<h2>Senior Data Engineer</h2>
	<h2>Contact Us</h2>
	<h2>Fullstack Developer</h2>
	</body></html>`

	listings := ExtractHTML(content, "https://board.example.com", "Startup Board")

	if len(listings) != 2 {
		t.Fatalf("expected 2 listings from heading fallback, got %d", len(listings))
	}
	for _, l := range listings {
		if l.Company != "Startup Board" {
			t.Fatalf("fallback listings should use the source name as company, got %q", l.Company)
		}
		if l.URL != "https://board.example.com" {
			t.Fatalf("fallback listings should use the page URL, got %q", l.URL)
		}
	}
}

func TestExtractHTMLDeduplicatesTitlesWithinPage(t *testing.T) {
	content := `<html><body>
	<a href="/a"><h3>QA Engineer</h3><span>Acme</span></a>
	<a href="/b"><h3>QA Engineer</h3><span>Acme</span></a>
	</body></html>`

	listings := ExtractHTML(content, "https://board.example.com", "Board")
	if len(listings) != 1 {
		t.Fatalf("expected duplicate title to be dropped, got %d", len(listings))
	}
}
