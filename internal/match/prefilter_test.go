package match

import (
	"testing"

	"github.com/jobradar/jobradar/internal/jobs"
)

func TestPreFilterKeepsSkillMentions(t *testing.T) {
	candidate := &jobs.CandidateProfile{
		Skills:     []string{"React", "TypeScript"},
		CoreSkills: []string{"React"},
	}

	listings := []jobs.Listing{
		{Title: "Backend Developer", Description: "We need a Java backend developer"},
		{Title: "Frontend Developer", Description: "Looking for a React developer"},
		{Title: "TypeScript Engineer", Description: "Node services"},
	}

	kept := PreFilter(candidate, listings)

	if len(kept) != 2 {
		t.Fatalf("expected 2 listings kept, got %d: %+v", len(kept), kept)
	}
	if kept[0].Title != "Frontend Developer" || kept[1].Title != "TypeScript Engineer" {
		t.Fatalf("unexpected kept set: %+v", kept)
	}
}

func TestPreFilterMatchesTitleToo(t *testing.T) {
	candidate := &jobs.CandidateProfile{Skills: []string{"Go"}}

	listings := []jobs.Listing{
		{Title: "Go Developer", Description: "unrelated text"},
	}

	if kept := PreFilter(candidate, listings); len(kept) != 1 {
		t.Fatalf("expected title match to be kept, got %d", len(kept))
	}
}

func TestPreFilterNoSkillsFiltersEverything(t *testing.T) {
	candidate := &jobs.CandidateProfile{}

	listings := []jobs.Listing{
		{Title: "Go Developer", Description: "anything"},
		{Title: "Data Analyst", Description: "anything"},
	}

	if kept := PreFilter(candidate, listings); len(kept) != 0 {
		t.Fatalf("candidate without skills must filter out every job, got %d", len(kept))
	}
}

func TestPreFilterCaseInsensitive(t *testing.T) {
	candidate := &jobs.CandidateProfile{Skills: []string{"PostgreSQL"}}

	listings := []jobs.Listing{
		{Title: "Database Engineer", Description: "Deep postgresql tuning experience required"},
	}

	if kept := PreFilter(candidate, listings); len(kept) != 1 {
		t.Fatalf("expected case-insensitive skill match, got %d", len(kept))
	}
}
