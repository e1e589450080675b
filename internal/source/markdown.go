package source

import (
	"regexp"
	"strings"

	"github.com/jobradar/jobradar/internal/jobs"
)

var (
	headingRe = regexp.MustCompile(`^#{1,6}\s*(.+)$`)
	linkRe    = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	bareRefRe = regexp.MustCompile(`^\[([^\]]+)\]`)
)

const (
	companyScanWindow = 5
	descScanWindow    = 10
	maxDescriptionLen = 200
)

// ExtractMarkdown scans rendered markdown for job listings. A heading or a
// [text](url) link whose text passes IsJobTitle starts a new listing; the
// following lines are mined for a company name and a short description. A
// listing is emitted only once both title and company are known.
func ExtractMarkdown(content, pageURL, sourceName string) []jobs.Listing {
	var listings []jobs.Listing
	var current *jobs.Listing

	flush := func() {
		if current == nil {
			return
		}
		if current.Title != "" && current.Company != "" {
			if current.URL == "" {
				current.URL = pageURL
			}
			if current.Description == "" {
				current.Description = "No description available"
			}
			listings = append(listings, *current)
		}
		current = nil
	}

	lines := strings.Split(content, "\n")
	for i, raw := range lines {
		line := strings.TrimSpace(raw)

		title, href := titleCandidate(line)
		if title == "" || !IsJobTitle(title) {
			continue
		}

		flush()

		current = &jobs.Listing{
			Title:  strings.TrimSpace(title),
			URL:    resolveURL(href, pageURL),
			Source: sourceName,
		}
		if href == "" {
			current.URL = pageURL
		}

		// Company: the next few non-heading, non-list lines.
		for j := i + 1; j < min(i+1+companyScanWindow, len(lines)); j++ {
			next := strings.TrimSpace(lines[j])
			if next == "" || strings.HasPrefix(next, "#") || strings.HasPrefix(next, "*") {
				continue
			}
			company := stripMarkdown(next)
			if len(company) >= 2 && len(company) < 50 && !IsJobTitle(company) {
				current.Company = company
				break
			}
		}

		// Description and remote/location hints from the surrounding window.
		window := lines[i+1 : min(i+1+descScanWindow, len(lines))]
		var descParts []string
		for _, w := range window {
			w = strings.TrimSpace(w)
			if w == "" || strings.HasPrefix(w, "#") {
				continue
			}
			descParts = append(descParts, w)
		}
		desc := stripMarkdown(strings.Join(descParts, " "))
		current.Description = truncate(desc, maxDescriptionLen)

		contextText := line + " " + strings.Join(window, " ")
		current.Remote = looksRemote(contextText)
		current.Location = extractLocation(contextText)
	}

	flush()
	return listings
}

// titleCandidate pulls a potential job title (and link target, when present)
// out of a single markdown line.
func titleCandidate(line string) (title, href string) {
	if m := linkRe.FindStringSubmatch(line); m != nil {
		return m[1], m[2]
	}
	if m := headingRe.FindStringSubmatch(line); m != nil {
		return m[1], ""
	}
	if m := bareRefRe.FindStringSubmatch(line); m != nil {
		return m[1], ""
	}
	return "", ""
}
