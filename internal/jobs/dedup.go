package jobs

import "strings"

// DedupKey builds the identity used for deduplication: lowercased company and
// title with all whitespace stripped, so "Acme Corp"/"Go Developer" collides
// with "acme corp"/" go developer ".
func DedupKey(l Listing) string {
	squash := func(s string) string {
		return strings.Join(strings.Fields(strings.ToLower(s)), "")
	}
	return squash(l.Company) + "-" + squash(l.Title)
}

// Deduplicate drops listings that share a dedup key with an earlier one.
// First occurrence in input order wins. Idempotent.
func Deduplicate(listings []Listing) []Listing {
	seen := make(map[string]struct{}, len(listings))
	unique := make([]Listing, 0, len(listings))

	for _, l := range listings {
		key := DedupKey(l)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, l)
	}

	return unique
}
