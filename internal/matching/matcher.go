// Package matching scores job postings against a skills profile and buckets
// them into priority tiers.
package matching

import (
	"math"
	"sort"
	"strings"

	"github.com/spigell/skillscout/internal/jobs"
	"github.com/spigell/skillscout/internal/skills"
)

const (
	wantBonus    = 10
	avoidPenalty = 15

	qualifiedScore = 50
	stretchScore   = 25
)

// Preferences tune scoring and filtering. All fields are optional.
type Preferences struct {
	Want      []string `json:"want,omitempty" mapstructure:"want"`
	Avoid     []string `json:"avoid,omitempty" mapstructure:"avoid"`
	Locations []string `json:"locations,omitempty" mapstructure:"locations"`
}

// Result is the ephemeral outcome of scoring one job against the profile.
type Result struct {
	Job           *jobs.Job `json:"job"`
	Score         int       `json:"score"`
	BaseScore     int       `json:"base_score"`
	Matched       []string  `json:"matched,omitempty"`
	Missing       []string  `json:"missing,omitempty"`
	Bonus         []string  `json:"bonus,omitempty"`
	LocationMatch bool      `json:"location_match"`
	WantMatch     bool      `json:"want_match"`
	HasAvoid      bool      `json:"has_avoid"`
}

// Buckets partitions scored jobs. Want, Qualified and Stretch are mutually
// exclusive; Filtered catches everything screened out by location or avoided
// skills.
type Buckets struct {
	Want      []*Result `json:"want,omitempty"`
	Qualified []*Result `json:"qualified,omitempty"`
	Stretch   []*Result `json:"stretch,omitempty"`
	Filtered  []*Result `json:"filtered,omitempty"`
}

// Match scores every job against the profile and returns results sorted by
// final score, stable over source order. It is total: empty inputs yield an
// empty slice, never an error.
func Match(list *jobs.Jobs, profile *skills.Profile, prefs *Preferences) []*Result {
	if list == nil || profile == nil {
		return nil
	}
	if prefs == nil {
		prefs = &Preferences{}
	}

	results := make([]*Result, 0, list.Len())
	for _, job := range list.Items {
		results = append(results, scoreJob(job, profile, prefs))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

func scoreJob(job *jobs.Job, profile *skills.Profile, prefs *Preferences) *Result {
	result := &Result{Job: job}

	jobSkills := lowered(job.Skills)
	description := strings.ToLower(job.Description)
	hit := make(map[string]bool, len(jobSkills))

	// Languages: exact token match counts as matched, a description mention
	// alone only as bonus.
	for _, name := range sortedLanguageNames(profile) {
		lang := profile.Languages[name]

		if token, ok := tokenFor(name, lang.Aliases, jobSkills); ok {
			result.Matched = append(result.Matched, name)
			hit[token] = true
			continue
		}

		if description != "" && strings.Contains(description, strings.ToLower(name)) {
			result.Bonus = append(result.Bonus, name)
		}
	}

	// Frameworks match on either signal.
	for _, name := range sortedFrameworkNames(profile) {
		lower := strings.ToLower(name)

		if containsToken(jobSkills, lower) {
			result.Matched = append(result.Matched, name)
			hit[lower] = true
			continue
		}

		if description != "" && strings.Contains(description, lower) {
			result.Matched = append(result.Matched, name)
		}
	}

	for _, token := range jobSkills {
		if !hit[token] {
			result.Missing = append(result.Missing, token)
		}
	}

	// A job advertising no skills keeps a denominator of one: any match
	// saturates, no match scores zero.
	denominator := len(jobSkills)
	if denominator < 1 {
		denominator = 1
	}
	// Description-matched frameworks can push the matched count past the
	// advertised skill tokens, so the ratio needs the same clamp as the
	// final score.
	result.BaseScore = clamp(int(math.Round(float64(len(result.Matched))/float64(denominator)*100)), 0, 100)

	score := result.BaseScore

	wantHits := 0
	for _, matched := range result.Matched {
		if containsAny(strings.ToLower(matched), prefs.Want) {
			wantHits++
		}
	}
	result.WantMatch = wantHits > 0
	score += wantBonus * wantHits

	avoidHits := 0
	for _, token := range jobSkills {
		if containsAny(token, prefs.Avoid) {
			avoidHits++
		}
	}
	result.HasAvoid = avoidHits > 0
	score -= avoidPenalty * avoidHits

	result.Score = clamp(score, 0, 100)
	result.LocationMatch = locationMatches(job, prefs.Locations)

	return result
}

// Categorize partitions sorted results into priority buckets.
func Categorize(results []*Result) *Buckets {
	buckets := &Buckets{}

	for _, r := range results {
		switch {
		case r.WantMatch && r.Score >= qualifiedScore && r.LocationMatch && !r.HasAvoid:
			buckets.Want = append(buckets.Want, r)
		case r.Score >= qualifiedScore && r.LocationMatch && !r.HasAvoid:
			buckets.Qualified = append(buckets.Qualified, r)
		case r.Score >= stretchScore && r.Score < qualifiedScore && r.LocationMatch:
			// Avoided or wanted skills do not matter for a stretch match.
			buckets.Stretch = append(buckets.Stretch, r)
		case !r.LocationMatch || r.HasAvoid:
			buckets.Filtered = append(buckets.Filtered, r)
		}
	}

	return buckets
}

func lowered(tokens []string) []string {
	result := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token = strings.ToLower(strings.TrimSpace(token)); token != "" {
			result = append(result, token)
		}
	}
	return result
}

// tokenFor returns the job skill token matching the language name or one of
// its aliases.
func tokenFor(name string, aliases []string, jobSkills []string) (string, bool) {
	candidates := append([]string{strings.ToLower(name)}, lowered(aliases)...)
	for _, candidate := range candidates {
		if containsToken(jobSkills, candidate) {
			return candidate, true
		}
	}
	return "", false
}

func containsToken(tokens []string, target string) bool {
	for _, token := range tokens {
		if token == target {
			return true
		}
	}
	return false
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if needle = strings.ToLower(strings.TrimSpace(needle)); needle != "" && strings.Contains(s, needle) {
			return true
		}
	}
	return false
}

func locationMatches(job *jobs.Job, locations []string) bool {
	if len(locations) == 0 {
		return true
	}

	jobLocation := strings.ToLower(job.Location)
	for _, location := range locations {
		location = strings.ToLower(strings.TrimSpace(location))
		if location == "" {
			continue
		}
		if location == "remote" && job.IsRemote() {
			return true
		}
		if jobLocation != "" && strings.Contains(jobLocation, location) {
			return true
		}
	}

	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sortedLanguageNames(profile *skills.Profile) []string {
	names := make([]string, 0, len(profile.Languages))
	for name := range profile.Languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedFrameworkNames(profile *skills.Profile) []string {
	names := make([]string, 0, len(profile.Frameworks))
	for name := range profile.Frameworks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
