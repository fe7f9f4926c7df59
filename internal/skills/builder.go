package skills

import (
	"sort"
	"time"

	"github.com/spigell/skillscout/internal/analyzer"
)

const (
	topEntries   = 5
	maxTools     = 20
	minToolRepos = 2
)

// Build aggregates feature records into one profile. Records flagged as
// excluded contribute to nothing, including TotalRepos. The result depends
// only on the multiset of included records, not their order.
func Build(records []*analyzer.Record) *Profile {
	profile := &Profile{
		Languages:  make(map[string]*LanguageSkill),
		Frameworks: make(map[string]*FrameworkSkill),
	}

	langFiles := make(map[string]int)
	langRepos := make(map[string]int)
	patternRepos := make(map[string]int)

	depRepos := make(map[depKey]int)

	var (
		included     int
		totalCommits int
		firstCommit  time.Time
		lastCommit   time.Time
	)

	for _, record := range records {
		if record.Excluded {
			continue
		}
		included++

		for _, lang := range record.Languages {
			langFiles[lang.Name] += lang.Files
			langRepos[lang.Name]++
		}

		for _, pattern := range record.Patterns {
			patternRepos[pattern]++
		}

		for ecosystem, names := range record.Dependencies {
			for _, name := range names {
				depRepos[depKey{ecosystem, name}]++
			}
		}

		if h := record.History; h != nil {
			totalCommits += h.CommitCount
			if !h.FirstCommit.IsZero() && (firstCommit.IsZero() || h.FirstCommit.Before(firstCommit)) {
				firstCommit = h.FirstCommit
			}
			if h.LastCommit.After(lastCommit) {
				lastCommit = h.LastCommit
			}
		}
	}

	for name, repos := range langRepos {
		profile.Languages[name] = &LanguageSkill{
			Files:   langFiles[name],
			Repos:   repos,
			Tier:    tierFor(repos, included, 1),
			Level:   levelOf(name),
			Aliases: languageAliases[name],
		}
	}

	patterns := make([]string, 0, len(patternRepos))
	for pattern, repos := range patternRepos {
		patterns = append(patterns, pattern)

		meta, ok := frameworkTable[pattern]
		if !ok {
			continue
		}
		profile.Frameworks[meta.Name] = &FrameworkSkill{
			Pattern:  pattern,
			Category: meta.Category,
			Repos:    repos,
			Tier:     tierFor(repos, included, meta.Weight),
		}
	}
	sort.Strings(patterns)
	if len(patterns) > 0 {
		profile.Patterns = patterns
	}

	profile.Tools = collectTools(depRepos)
	profile.Domains = deriveDomains(profile)

	profile.Summary = Summary{
		TotalRepos:    included,
		TotalCommits:  totalCommits,
		YearsActive:   yearsActive(firstCommit, lastCommit),
		TopLanguages:  topLanguages(profile.Languages),
		TopFrameworks: topFrameworks(profile.Frameworks),
	}

	return profile
}

// tierFor implements the proficiency step function over the weighted share of
// repositories an entity appears in. Boundary values resolve to the higher
// tier.
func tierFor(repos, total int, weight float64) Tier {
	if total == 0 {
		return TierFamiliar
	}

	ratio := float64(repos) / float64(total) * weight
	switch {
	case ratio >= 0.5:
		return TierExpert
	case ratio >= 0.3:
		return TierAdvanced
	case ratio >= 0.15:
		return TierIntermediate
	default:
		return TierFamiliar
	}
}

func levelOf(language string) Level {
	if level, ok := languageLevels[language]; ok {
		return level
	}
	return LevelLanguage
}

type depKey struct {
	ecosystem string
	name      string
}

func collectTools(depRepos map[depKey]int) map[string]*Tool {
	type entry struct {
		name      string
		ecosystem string
		repos     int
	}

	entries := make([]entry, 0, len(depRepos))
	for key, repos := range depRepos {
		if repos < minToolRepos {
			continue
		}
		entries = append(entries, entry{name: key.name, ecosystem: key.ecosystem, repos: repos})
	}
	if len(entries) == 0 {
		return nil
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].repos != entries[j].repos {
			return entries[i].repos > entries[j].repos
		}
		return entries[i].name < entries[j].name
	})

	if len(entries) > maxTools {
		entries = entries[:maxTools]
	}

	tools := make(map[string]*Tool, len(entries))
	for _, e := range entries {
		if _, ok := tools[e.name]; ok {
			continue
		}
		tools[e.name] = &Tool{Ecosystem: e.ecosystem, Repos: e.repos}
	}
	return tools
}

// deriveDomains unions the pattern and framework-category domain tables into
// one sorted set of expertise labels.
func deriveDomains(profile *Profile) []string {
	seen := make(map[string]bool)

	for _, pattern := range profile.Patterns {
		if domain, ok := patternDomains[pattern]; ok {
			seen[domain] = true
		}
	}

	for _, framework := range profile.Frameworks {
		if domain, ok := categoryDomains[framework.Category]; ok {
			seen[domain] = true
		}
	}

	if len(seen) == 0 {
		return nil
	}

	domains := make([]string, 0, len(seen))
	for domain := range seen {
		domains = append(domains, domain)
	}
	sort.Strings(domains)
	return domains
}

// yearsActive spans earliest first commit to latest last commit, floored at
// one year.
func yearsActive(first, last time.Time) int {
	years := 1
	if !first.IsZero() && last.After(first) {
		if span := int(last.Sub(first).Hours() / (24 * 365)); span > years {
			years = span
		}
	}
	return years
}

// topLanguages ranks language-level entries by repository count. Markup,
// styling and framework-level entries stay in the full map but are not
// ranked here.
func topLanguages(languages map[string]*LanguageSkill) []string {
	names := make([]string, 0, len(languages))
	for name, skill := range languages {
		if skill.Level != LevelLanguage {
			continue
		}
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		a, b := languages[names[i]], languages[names[j]]
		if a.Repos != b.Repos {
			return a.Repos > b.Repos
		}
		if a.Files != b.Files {
			return a.Files > b.Files
		}
		return names[i] < names[j]
	})

	if len(names) > topEntries {
		names = names[:topEntries]
	}
	return names
}

func topFrameworks(frameworks map[string]*FrameworkSkill) []string {
	names := make([]string, 0, len(frameworks))
	for name := range frameworks {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		a, b := frameworks[names[i]], frameworks[names[j]]
		if a.Repos != b.Repos {
			return a.Repos > b.Repos
		}
		return names[i] < names[j]
	})

	if len(names) > topEntries {
		names = names[:topEntries]
	}
	return names
}
