package match

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jobradar/jobradar/internal/jobs"
)

// Export is the serializable result bundle written by the CLI.
type Export struct {
	Candidate struct {
		Name            string   `json:"name,omitempty"`
		Headline        string   `json:"headline,omitempty"`
		YearsExperience int      `json:"yearsExperience"`
		Skills          []string `json:"skills"`
	} `json:"candidate"`
	Matches []jobs.Match `json:"matches"`
	Summary struct {
		TotalMatches int     `json:"totalMatches"`
		AverageScore float64 `json:"averageScore"`
		TopScore     float64 `json:"topScore"`
	} `json:"summary"`
	ExportedAt time.Time `json:"exportedAt"`
}

// BuildExport assembles the export bundle with summary statistics.
func BuildExport(candidate *jobs.CandidateProfile, matches []jobs.Match) Export {
	var export Export
	export.Candidate.Name = candidate.Name
	export.Candidate.Headline = candidate.Headline
	export.Candidate.YearsExperience = candidate.YearsExperience
	export.Candidate.Skills = candidate.Skills
	export.Matches = matches
	export.ExportedAt = time.Now().UTC()

	export.Summary.TotalMatches = len(matches)
	if len(matches) > 0 {
		var sum, top float64
		for _, m := range matches {
			sum += m.Score
			if m.Score > top {
				top = m.Score
			}
		}
		export.Summary.AverageScore = math.Round(sum / float64(len(matches)))
		export.Summary.TopScore = top
	}

	return export
}

// OutreachEmail renders a ready-to-edit application email for a match.
func OutreachEmail(m jobs.Match, candidate *jobs.CandidateProfile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Subject: Application for %s at %s\n\n", m.Title, m.Company)
	b.WriteString("Dear Hiring Manager,\n\n")
	fmt.Fprintf(&b, "I am writing to express my strong interest in the %s position at %s.\n\n", m.Title, m.Company)

	skills := candidate.Skills
	if len(skills) > 5 {
		skills = skills[:5]
	}
	fmt.Fprintf(&b, "%s With %d years of experience and expertise in %s, I believe I would be a valuable addition to your team.\n\n",
		m.Pitch, candidate.YearsExperience, strings.Join(skills, ", "))

	if len(candidate.TopProjects) > 0 {
		projects := candidate.TopProjects
		if len(projects) > 2 {
			projects = projects[:2]
		}
		fmt.Fprintf(&b, "Some of my notable achievements include: %s.\n\n", strings.Join(projects, ", "))
	}

	b.WriteString("I would welcome the opportunity to discuss how my background and skills align with your team's needs. Thank you for your consideration.\n\n")
	b.WriteString("Best regards,\n")

	name := candidate.Name
	if name == "" {
		name = "Your Name"
	}
	b.WriteString(name + "\n")

	return b.String()
}
