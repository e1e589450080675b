package source

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jobradar/jobradar/internal/jobs"
)

const headingSelector = "h1, h2, h3, h4, h5, h6"

// ExtractHTML is the fallback extractor for pages the rendering service could
// not convert to markdown. It tries a few common title/company/link
// groupings in order and degrades to bare headings when none match.
func ExtractHTML(content, pageURL, sourceName string) []jobs.Listing {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	var listings []jobs.Listing

	add := func(title, company, href string) {
		title = strings.TrimSpace(title)
		if len(title) < 4 || !IsJobTitle(title) {
			return
		}
		if _, ok := seen[title]; ok {
			return
		}
		seen[title] = struct{}{}

		if company = strings.TrimSpace(company); company == "" {
			company = sourceName
		}

		listings = append(listings, jobs.Listing{
			Title:       title,
			Company:     company,
			URL:         resolveURL(href, pageURL),
			Description: descriptionNear(doc, title, sourceName),
			Source:      sourceName,
			Remote:      looksRemote(content),
			Location:    extractLocation(doc.Text()),
		})
	}

	// Anchors wrapping a heading: the usual board layout.
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		heading := a.Find(headingSelector).First()
		if heading.Length() == 0 {
			return
		}
		href, _ := a.Attr("href")
		company := strings.TrimSpace(a.Find("span").First().Text())
		add(heading.Text(), company, href)
	})

	// Job-card containers with a heading and a company span.
	if len(listings) == 0 {
		doc.Find("div[class*=job], article").Each(func(_ int, card *goquery.Selection) {
			heading := card.Find(headingSelector).First()
			if heading.Length() == 0 {
				return
			}
			href, _ := card.Find("a[href]").First().Attr("href")
			company := strings.TrimSpace(card.Find("span").First().Text())
			add(heading.Text(), company, href)
		})
	}

	// Last resort: bare headings as titles.
	if len(listings) == 0 {
		doc.Find(headingSelector).EachWithBreak(func(i int, heading *goquery.Selection) bool {
			add(heading.Text(), "", "")
			return i < 9
		})
	}

	return listings
}

// descriptionNear grabs the text following the element containing title.
func descriptionNear(doc *goquery.Document, title, sourceName string) string {
	var desc string
	doc.Find(headingSelector).EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(heading.Text()), strings.ToLower(title)) {
			return true
		}
		text := strings.Join(strings.Fields(heading.Parent().Text()), " ")
		desc = truncate(text, maxDescriptionLen)
		return false
	})
	if desc == "" {
		desc = "Job posting from " + sourceName
	}
	return desc
}
