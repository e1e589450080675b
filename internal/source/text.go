package source

import (
	"net/url"
	"regexp"
	"strings"
)

// jobTitleKeywords classifies a text fragment as a plausible job title. The
// set is deliberately broad; the pre-filter and scorer downstream are the
// real quality gates.
var jobTitleKeywords = []string{
	"engineer", "developer", "designer", "manager", "analyst", "specialist",
	"consultant", "architect", "lead", "senior", "junior", "intern",
	"frontend", "backend", "fullstack", "devops", "qa", "data",
	"product", "marketing", "sales", "support", "operations",
}

// IsJobTitle reports whether text looks like a job title. The predicate is a
// named, swappable classifier shared by the markdown and HTML extractors.
func IsJobTitle(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range jobTitleKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

var (
	remoteRe      = regexp.MustCompile(`(?i)remote|anywhere|distributed|work from home`)
	locationRe    = regexp.MustCompile(`(?i)(?:location|based|office)[\s:]*([^\n\r|]{1,50})`)
	knownCitiesRe = regexp.MustCompile(`(?i)\b(?:san francisco|new york|london|berlin|toronto|seattle|austin|boston|chicago|los angeles|miami|denver)\b`)
	markdownRe    = regexp.MustCompile(`[*_\[\]()#>]`)
)

func looksRemote(text string) bool {
	return remoteRe.MatchString(text)
}

func extractLocation(text string) string {
	if m := locationRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := knownCitiesRe.FindString(text); m != "" {
		return m
	}
	return ""
}

func stripMarkdown(s string) string {
	return strings.TrimSpace(markdownRe.ReplaceAllString(s, ""))
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// resolveURL makes href absolute against the page it was found on.
func resolveURL(href, pageURL string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return pageURL
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return pageURL
	}
	return base.ResolveReference(ref).String()
}

// matchesKeywords reports whether any keyword appears in the listing's title
// or description. An empty keyword list matches everything.
func matchesKeywords(title, description string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	haystack := strings.ToLower(title + " " + description)
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw == "" {
			continue
		}
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}
