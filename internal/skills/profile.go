// Package skills aggregates repository feature records into one normalized
// skills profile.
package skills

// Tier is the coarse proficiency label derived from relative usage frequency.
type Tier string

const (
	TierExpert       Tier = "expert"
	TierAdvanced     Tier = "advanced"
	TierIntermediate Tier = "intermediate"
	TierFamiliar     Tier = "familiar"
)

// Profile is the aggregated skills profile of one user.
type Profile struct {
	Languages  map[string]*LanguageSkill  `json:"languages"`
	Frameworks map[string]*FrameworkSkill `json:"frameworks"`
	Tools      map[string]*Tool           `json:"tools,omitempty"`
	Patterns   []string                   `json:"patterns,omitempty"`
	Domains    []string                   `json:"domains,omitempty"`
	Summary    Summary                    `json:"summary"`
}

// LanguageSkill aggregates one language across all analyzed repositories.
type LanguageSkill struct {
	Files   int      `json:"files"`
	Repos   int      `json:"repos"`
	Tier    Tier     `json:"tier"`
	Level   Level    `json:"level"`
	Aliases []string `json:"aliases,omitempty"`
}

// FrameworkSkill aggregates one framework, keyed in the profile by its
// display name. Pattern is the tag it was derived from.
type FrameworkSkill struct {
	Pattern  string `json:"pattern"`
	Category string `json:"category"`
	Repos    int    `json:"repos"`
	Tier     Tier   `json:"tier"`
}

// Tool is a dependency seen in at least two repositories.
type Tool struct {
	Ecosystem string `json:"ecosystem"`
	Repos     int    `json:"repos"`
}

// Summary carries headline statistics for presentation layers.
type Summary struct {
	TotalRepos    int      `json:"total_repos"`
	TotalCommits  int      `json:"total_commits"`
	YearsActive   int      `json:"years_active"`
	TopLanguages  []string `json:"top_languages,omitempty"`
	TopFrameworks []string `json:"top_frameworks,omitempty"`
}
