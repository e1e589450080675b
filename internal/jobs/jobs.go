package jobs

import "fmt"

// Kind selects the adapter used to fetch a source.
type Kind string

const (
	// KindScrape sources are fetched through the rendering service and
	// parsed out of the returned markdown or HTML.
	KindScrape Kind = "scrape"
	// KindAPI sources expose a JSON endpoint with listing objects.
	KindAPI Kind = "api"
	// KindFeed sources are RSS/XML feeds.
	KindFeed Kind = "feed"
)

// Source is a statically configured external job board or feed.
type Source struct {
	Name       string `mapstructure:"name"`
	BaseURL    string `mapstructure:"url"`
	Kind       Kind   `mapstructure:"kind"`
	DailyQuota int    `mapstructure:"daily-quota"`
	MaxPages   int    `mapstructure:"max-pages"`

	// SearchTemplate, when set on a scrape source, is used instead of
	// BaseURL. The {{KEYWORDS}} placeholder is replaced with the
	// url-encoded top search keywords.
	SearchTemplate string `mapstructure:"search-template"`

	// FieldMap maps endpoint field names onto listing field names for
	// api sources (e.g. position -> title, companyName -> company).
	FieldMap map[string]string `mapstructure:"field-map"`
}

// Listing is a normalized job posting before scoring.
type Listing struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	Remote      bool   `json:"remote,omitempty"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

// ProgressFunc receives free-text status lines from the pipeline. It is
// fire-and-forget: the pipeline never blocks on it and ignores its absence.
type ProgressFunc func(message string)

// Report formats and delivers a status line. Safe to call on a nil sink.
func (f ProgressFunc) Report(format string, args ...any) {
	if f == nil {
		return
	}
	f(fmt.Sprintf(format, args...))
}
