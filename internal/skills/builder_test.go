package skills

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spigell/skillscout/internal/analyzer"
	"github.com/spigell/skillscout/internal/gitinfo"
)

func record(name string, languages []analyzer.Language, patterns []string) *analyzer.Record {
	return &analyzer.Record{
		Name:      name,
		Path:      "/repos/" + name,
		History:   gitinfo.Sentinel(),
		Languages: languages,
		Patterns:  patterns,
	}
}

func TestBuildProficiencyTiers(t *testing.T) {
	// 5 of 10 repos use JavaScript: ratio 0.5 lands exactly on the expert
	// boundary.
	records := make([]*analyzer.Record, 0, 10)
	for i := 0; i < 5; i++ {
		records = append(records, record(string(rune('a'+i)), []analyzer.Language{{Name: "JavaScript", Files: 10}}, nil))
	}
	for i := 5; i < 10; i++ {
		records = append(records, record(string(rune('a'+i)), []analyzer.Language{{Name: "Go", Files: 3}}, nil))
	}

	profile := Build(records)

	require.Equal(t, 10, profile.Summary.TotalRepos)
	require.Equal(t, TierExpert, profile.Languages["JavaScript"].Tier)
	require.Equal(t, 50, profile.Languages["JavaScript"].Files)
	require.Equal(t, 5, profile.Languages["JavaScript"].Repos)
	require.Equal(t, TierExpert, profile.Languages["Go"].Tier)
}

func TestTierForBoundaries(t *testing.T) {
	require.Equal(t, TierExpert, tierFor(5, 10, 1))
	require.Equal(t, TierAdvanced, tierFor(3, 10, 1))
	require.Equal(t, TierIntermediate, tierFor(15, 100, 1))
	require.Equal(t, TierFamiliar, tierFor(1, 10, 1))
	require.Equal(t, TierFamiliar, tierFor(0, 0, 1))

	// Framework weight inflates the ratio.
	require.Equal(t, TierExpert, tierFor(4, 10, 1.3))
}

func TestTierMonotonicInRepoCount(t *testing.T) {
	rank := map[Tier]int{TierFamiliar: 0, TierIntermediate: 1, TierAdvanced: 2, TierExpert: 3}

	previous := TierFamiliar
	for repos := 0; repos <= 20; repos++ {
		tier := tierFor(repos, 20, 1)
		require.GreaterOrEqual(t, rank[tier], rank[previous], "repos=%d", repos)
		previous = tier
	}
}

func TestBuildSkipsExcludedRecords(t *testing.T) {
	records := []*analyzer.Record{
		record("kept", []analyzer.Language{{Name: "Go", Files: 5}}, nil),
		record("also-kept", []analyzer.Language{{Name: "Go", Files: 2}}, nil),
		record("dropped", []analyzer.Language{{Name: "Rust", Files: 9}}, []string{"docker"}),
	}
	records[2].Excluded = true

	profile := Build(records)

	// Excluded records contribute to nothing, TotalRepos included.
	require.Equal(t, 2, profile.Summary.TotalRepos)
	require.NotContains(t, profile.Languages, "Rust")
	require.Empty(t, profile.Frameworks)
	require.Equal(t, 2, profile.Languages["Go"].Repos)
}

func TestBuildIsOrderIndependent(t *testing.T) {
	a := record("a", []analyzer.Language{{Name: "Go", Files: 5}, {Name: "Markdown", Files: 1}}, []string{"docker", "testing"})
	b := record("b", []analyzer.Language{{Name: "Python", Files: 7}}, []string{"react", "docker"})
	c := record("c", []analyzer.Language{{Name: "Go", Files: 2}}, []string{"ci"})
	a.Dependencies = map[string][]string{"npm": {"react", "vite"}}
	b.Dependencies = map[string][]string{"npm": {"react"}}

	first := Build([]*analyzer.Record{a, b, c})
	second := Build([]*analyzer.Record{c, a, b})

	require.Equal(t, first, second)
}

func TestBuildFrameworksFromPatternTable(t *testing.T) {
	records := []*analyzer.Record{
		record("one", nil, []string{"react", "docker", "unknown-tag"}),
		record("two", nil, []string{"docker"}),
	}

	profile := Build(records)

	require.Contains(t, profile.Frameworks, "React")
	require.Contains(t, profile.Frameworks, "Docker")
	require.Equal(t, 2, profile.Frameworks["Docker"].Repos)
	require.Equal(t, "devops", profile.Frameworks["Docker"].Category)

	// Patterns without a table entry stay patterns only.
	require.NotContains(t, profile.Frameworks, "unknown-tag")
	require.Contains(t, profile.Patterns, "unknown-tag")
}

func TestBuildTopLanguagesExcludesMarkupLevels(t *testing.T) {
	records := []*analyzer.Record{
		record("one", []analyzer.Language{{Name: "Go", Files: 5}, {Name: "Markdown", Files: 10}, {Name: "CSS", Files: 4}}, nil),
		record("two", []analyzer.Language{{Name: "Go", Files: 1}, {Name: "Markdown", Files: 2}}, nil),
	}

	profile := Build(records)

	require.Equal(t, []string{"Go"}, profile.Summary.TopLanguages)
	require.Contains(t, profile.Languages, "Markdown")
	require.Contains(t, profile.Languages, "CSS")

	// Every ranked name must exist in the full map.
	for _, name := range profile.Summary.TopLanguages {
		require.Contains(t, profile.Languages, name)
	}
	for _, name := range profile.Summary.TopFrameworks {
		require.Contains(t, profile.Frameworks, name)
	}
}

func TestBuildToolsRequireTwoRepos(t *testing.T) {
	a := record("a", nil, nil)
	a.Dependencies = map[string][]string{"npm": {"react", "lodash"}}
	b := record("b", nil, nil)
	b.Dependencies = map[string][]string{"npm": {"react"}}

	profile := Build([]*analyzer.Record{a, b})

	require.Contains(t, profile.Tools, "react")
	require.Equal(t, 2, profile.Tools["react"].Repos)
	require.Equal(t, "npm", profile.Tools["react"].Ecosystem)
	require.NotContains(t, profile.Tools, "lodash")
}

func TestBuildDomains(t *testing.T) {
	records := []*analyzer.Record{
		record("one", nil, []string{"docker", "react", "testing"}),
	}

	profile := Build(records)

	require.Equal(t, []string{"DevOps", "Quality engineering", "Web frontend"}, profile.Domains)
}

func TestBuildSummaryYearsActive(t *testing.T) {
	a := record("a", nil, nil)
	a.History = &gitinfo.History{
		FirstCommit: time.Date(2016, 3, 1, 0, 0, 0, 0, time.UTC),
		LastCommit:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CommitCount: 120,
		Freshness:   gitinfo.FreshnessFresh,
	}
	b := record("b", nil, nil)
	b.History = &gitinfo.History{
		FirstCommit: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
		LastCommit:  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		CommitCount: 30,
		Freshness:   gitinfo.FreshnessStale,
	}

	profile := Build([]*analyzer.Record{a, b})

	require.Equal(t, 150, profile.Summary.TotalCommits)
	require.Equal(t, 9, profile.Summary.YearsActive)
}

func TestBuildEmptyInput(t *testing.T) {
	profile := Build(nil)

	require.Empty(t, profile.Languages)
	require.Empty(t, profile.Frameworks)
	require.Zero(t, profile.Summary.TotalRepos)
	require.Equal(t, 1, profile.Summary.YearsActive)
}
