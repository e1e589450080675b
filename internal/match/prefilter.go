// Package match turns deduplicated listings into ranked candidate matches:
// a cheap keyword pre-filter followed by batched scoring through the
// reasoning collaborator.
package match

import (
	"strings"

	"github.com/jobradar/jobradar/internal/jobs"
)

// PreFilter removes listings that mention none of the candidate's skills,
// cutting the cross-product before the expensive scoring step. It keeps a
// listing when at least one core skill or one skill of any kind appears in
// the title or description; deliberately permissive. A candidate without any
// skills filters everything out, so the scorer is never invoked for them.
func PreFilter(candidate *jobs.CandidateProfile, listings []jobs.Listing) []jobs.Listing {
	core := lowerAll(candidate.CoreSkills)
	all := lowerAll(candidate.Skills)

	if len(core) == 0 && len(all) == 0 {
		return nil
	}

	kept := make([]jobs.Listing, 0, len(listings))
	for _, l := range listings {
		jobText := strings.ToLower(l.Title + " " + l.Description)

		if countContained(jobText, core) >= 1 || countContained(jobText, all) >= 1 {
			kept = append(kept, l)
		}
	}
	return kept
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func countContained(haystack string, needles []string) int {
	var n int
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			n++
		}
	}
	return n
}
