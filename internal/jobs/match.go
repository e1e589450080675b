package jobs

// ScoreBreakdown splits a match score into its weighted components.
type ScoreBreakdown struct {
	SkillMatch      float64 `json:"skillMatch"`      // 0-40
	ExperienceMatch float64 `json:"experienceMatch"` // 0-30
	ProjectMatch    float64 `json:"projectMatch"`    // 0-20
	PreferenceMatch float64 `json:"preferenceMatch"` // 0-10
}

// Match is a listing enriched with a candidate-specific compatibility score.
// Never mutated after creation.
type Match struct {
	Title              string          `json:"title"`
	Company            string          `json:"company"`
	URL                string          `json:"url"`
	Score              float64         `json:"score"`
	ScoreBreakdown     *ScoreBreakdown `json:"scoreBreakdown,omitempty"`
	RequiredSkills     []string        `json:"requiredSkills"`
	NiceToHaveSkills   []string        `json:"niceToHaveSkills"`
	MissingSkills      []string        `json:"missingSkills"`
	ExperienceRequired string          `json:"experienceRequired,omitempty"`
	Pitch              string          `json:"pitch"`
	Location           string          `json:"location,omitempty"`
	Remote             bool            `json:"remote,omitempty"`
	Source             string          `json:"source,omitempty"`
}
