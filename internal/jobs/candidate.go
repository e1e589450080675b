package jobs

import (
	"encoding/json"
	"fmt"
	"os"
)

// Preferences holds the candidate's soft constraints for matching.
type Preferences struct {
	DesiredRoles          []string `json:"desiredRoles,omitempty"`
	LocationPreferences   []string `json:"locationPreferences,omitempty"`
	RemoteOnly            bool     `json:"remoteOnly,omitempty"`
	CompanySizePreference string   `json:"companySizePreference,omitempty"`
}

// CandidateProfile is the read-only matching input. It is produced outside
// this pipeline (resume analysis, portfolio crawl) and loaded from disk.
type CandidateProfile struct {
	Name            string       `json:"name,omitempty"`
	Headline        string       `json:"headline,omitempty"`
	Skills          []string     `json:"skills"`
	CoreSkills      []string     `json:"coreSkills,omitempty"`
	SecondarySkills []string     `json:"secondarySkills,omitempty"`
	YearsExperience int          `json:"yearsExperience"`
	ExperienceLevel string       `json:"experienceLevel,omitempty"`
	TopProjects     []string     `json:"topProjects,omitempty"`
	Gaps            []string     `json:"gaps,omitempty"`
	Suggestions     []string     `json:"suggestions,omitempty"`
	Location        string       `json:"location,omitempty"`
	Preferences     *Preferences `json:"preferences,omitempty"`
}

// LoadProfile reads a candidate profile from a JSON file.
func LoadProfile(path string) (*CandidateProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	var profile CandidateProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parsing profile %q: %w", path, err)
	}

	if profile.ExperienceLevel == "" {
		profile.ExperienceLevel = DeriveExperienceLevel(profile.YearsExperience)
	}

	return &profile, nil
}

// DeriveExperienceLevel maps total years of experience onto a seniority bucket.
func DeriveExperienceLevel(years int) string {
	switch {
	case years < 2:
		return "entry"
	case years < 5:
		return "mid"
	case years < 10:
		return "senior"
	case years < 15:
		return "staff"
	default:
		return "principal"
	}
}
