package match

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/jobradar/jobradar/internal/ai"
	"github.com/jobradar/jobradar/internal/jobs"
	"go.uber.org/zap"
)

//go:embed prompt.md
var systemPrompt string

const (
	defaultBatchSize  = 20
	defaultMaxMatches = 50
	defaultMinScore   = 30
	scoringTemp       = 0.3
	maxLogPreview     = 200
)

// Scorer ranks listings against a candidate via the reasoning collaborator.
// Unlike the aggregator, scoring has no partial-result fallback: any chunk
// failure aborts the whole call.
type Scorer struct {
	generator  ai.Generator
	logger     *zap.Logger
	batchSize  int
	maxMatches int
	minScore   float64
}

// NewScorer builds a scorer. batchSize and maxMatches fall back to 20 and 50
// when non-positive; both are cost-control knobs, not correctness ones.
func NewScorer(generator ai.Generator, logger *zap.Logger, batchSize, maxMatches int) *Scorer {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if maxMatches <= 0 {
		maxMatches = defaultMaxMatches
	}
	return &Scorer{
		generator:  generator,
		logger:     logger,
		batchSize:  batchSize,
		maxMatches: maxMatches,
		minScore:   defaultMinScore,
	}
}

// Score chunks the listings, scores each chunk, and returns the merged
// matches sorted by score descending (original order breaking ties) and
// truncated to the configured maximum.
func (s *Scorer) Score(ctx context.Context, candidate *jobs.CandidateProfile, listings []jobs.Listing, progress jobs.ProgressFunc) ([]jobs.Match, error) {
	if len(listings) == 0 {
		return nil, nil
	}

	totalBatches := (len(listings) + s.batchSize - 1) / s.batchSize

	var all []jobs.Match
	for i := 0; i < len(listings); i += s.batchSize {
		end := min(i+s.batchSize, len(listings))
		batch := listings[i:end]

		progress.Report("[LLM] Processing batch %d/%d...", i/s.batchSize+1, totalBatches)

		matches, err := s.scoreBatch(ctx, candidate, batch)
		if err != nil {
			return nil, fmt.Errorf("scoring batch %d/%d: %w", i/s.batchSize+1, totalBatches, err)
		}
		all = append(all, matches...)
	}

	// Stable sort keeps chunk-appended order as the tiebreak, so results do
	// not depend on chunk completion order if batches are ever parallelized.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Score > all[j].Score
	})
	if len(all) > s.maxMatches {
		all = all[:s.maxMatches]
	}

	progress.Report("[LLM] Found %d quality matches", len(all))
	return all, nil
}

type wireBreakdown struct {
	SkillMatch      float64 `json:"skillMatch"`
	ExperienceMatch float64 `json:"experienceMatch"`
	ProjectMatch    float64 `json:"projectMatch"`
	PreferenceMatch float64 `json:"preferenceMatch"`
}

type wireMatch struct {
	Title              string         `json:"title"`
	Company            string         `json:"company"`
	URL                string         `json:"url"`
	Score              float64        `json:"score"`
	ScoreBreakdown     *wireBreakdown `json:"scoreBreakdown"`
	RequiredSkills     []string       `json:"requiredSkills"`
	NiceToHaveSkills   []string       `json:"niceToHaveSkills"`
	MissingSkills      []string       `json:"missingSkills"`
	ExperienceRequired string         `json:"experienceRequired"`
	Pitch              string         `json:"pitch"`
}

type wireResponse struct {
	Matches []wireMatch `json:"matches"`
}

func (s *Scorer) scoreBatch(ctx context.Context, candidate *jobs.CandidateProfile, batch []jobs.Listing) ([]jobs.Match, error) {
	user := buildUserPrompt(candidate, batch)

	s.logger.Debug("scoring request",
		zap.Int("jobs", len(batch)),
		zap.Int("prompt_length", utf8.RuneCountInString(user)),
	)

	raw, err := s.generator.Generate(ctx, systemPrompt, user, ai.Options{
		JSONMode:    true,
		Temperature: scoringTemp,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("scoring response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", preview(raw)),
	)

	var response wireResponse
	if err := json.Unmarshal([]byte(extractJSON(raw)), &response); err != nil {
		return nil, fmt.Errorf("parse scoring response: %w", err)
	}

	matches := make([]jobs.Match, 0, len(response.Matches))
	for _, wm := range response.Matches {
		if wm.Score < s.minScore {
			continue
		}

		match := jobs.Match{
			Title:              wm.Title,
			Company:            wm.Company,
			URL:                wm.URL,
			Score:              clamp(wm.Score, 0, 100),
			RequiredSkills:     orEmpty(wm.RequiredSkills),
			NiceToHaveSkills:   orEmpty(wm.NiceToHaveSkills),
			MissingSkills:      orEmpty(wm.MissingSkills),
			ExperienceRequired: wm.ExperienceRequired,
			Pitch:              wm.Pitch,
		}
		if match.Pitch == "" {
			match.Pitch = "Great fit for this role"
		}
		if wm.ScoreBreakdown != nil {
			match.ScoreBreakdown = &jobs.ScoreBreakdown{
				SkillMatch:      clamp(wm.ScoreBreakdown.SkillMatch, 0, 40),
				ExperienceMatch: clamp(wm.ScoreBreakdown.ExperienceMatch, 0, 30),
				ProjectMatch:    clamp(wm.ScoreBreakdown.ProjectMatch, 0, 20),
				PreferenceMatch: clamp(wm.ScoreBreakdown.PreferenceMatch, 0, 10),
			}
		}

		// Re-attach fields the model does not see reliably. When no original
		// listing matches, they stay unset rather than guessed.
		if original := findOriginal(batch, wm.Title, wm.Company); original != nil {
			match.Location = original.Location
			match.Remote = original.Remote
			match.Source = original.Source
		}

		matches = append(matches, match)
	}

	return matches, nil
}

func buildUserPrompt(candidate *jobs.CandidateProfile, batch []jobs.Listing) string {
	var b strings.Builder

	name := candidate.Name
	if name == "" {
		name = "Anonymous"
	}
	core := candidate.CoreSkills
	if len(core) == 0 {
		core = candidate.Skills
		if len(core) > 5 {
			core = core[:5]
		}
	}

	fmt.Fprintf(&b, "Candidate:\n")
	fmt.Fprintf(&b, "Name: %s\n", name)
	fmt.Fprintf(&b, "Headline: %s\n", candidate.Headline)
	fmt.Fprintf(&b, "Experience: %d years (%s level)\n", candidate.YearsExperience, candidate.ExperienceLevel)
	fmt.Fprintf(&b, "Core Skills: %s\n", strings.Join(core, ", "))
	fmt.Fprintf(&b, "All Skills: %s\n", strings.Join(candidate.Skills, ", "))
	fmt.Fprintf(&b, "Top Projects: %s\n", strings.Join(candidate.TopProjects, ", "))

	location := candidate.Location
	if location == "" {
		location = "Not specified"
	}
	fmt.Fprintf(&b, "Location: %s\n", location)

	if prefs := candidate.Preferences; prefs != nil {
		if prefs.RemoteOnly {
			b.WriteString("Preference: Remote only\n")
		}
		if len(prefs.DesiredRoles) > 0 {
			fmt.Fprintf(&b, "Desired Roles: %s\n", strings.Join(prefs.DesiredRoles, ", "))
		}
	}

	b.WriteString("\nJobs:\n")
	for i, job := range batch {
		location := job.Location
		if location == "" {
			location = "Not specified"
		}
		remote := "No"
		if job.Remote {
			remote = "Yes"
		}
		fmt.Fprintf(&b, "\n%d. %s at %s\nURL: %s\nDescription: %s\nLocation: %s\nRemote: %s\n",
			i+1, job.Title, job.Company, job.URL, job.Description, location, remote)
	}

	return b.String()
}

func findOriginal(batch []jobs.Listing, title, company string) *jobs.Listing {
	for i := range batch {
		if batch[i].Title == title && batch[i].Company == company {
			return &batch[i]
		}
	}
	return nil
}

// extractJSON strips markdown code fences some models wrap JSON replies in.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(strings.Trim(raw, "`"))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func preview(s string) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= maxLogPreview {
		return string(runes)
	}
	return string(runes[:maxLogPreview]) + "..."
}
