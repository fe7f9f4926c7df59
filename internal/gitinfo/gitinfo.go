// Package gitinfo reads commit history from a local repository by shelling
// out to the git binary. Every invocation is best-effort: a missing tool, a
// directory that is not a repository or an empty history all degrade to a
// sentinel History instead of an error.
package gitinfo

import (
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Freshness classifies how recently a repository was touched.
type Freshness string

const (
	FreshnessFresh   Freshness = "fresh"
	FreshnessAging   Freshness = "aging"
	FreshnessStale   Freshness = "stale"
	FreshnessUnknown Freshness = "unknown"

	agingAfterDays = 30
	staleAfterDays = 90

	topAuthorsLimit = 3
)

// History summarizes the commit history of one repository.
type History struct {
	FirstCommit     time.Time `json:"first_commit,omitempty"`
	LastCommit      time.Time `json:"last_commit,omitempty"`
	CommitCount     int       `json:"commit_count"`
	Branch          string    `json:"branch,omitempty"`
	HasRemote       bool      `json:"has_remote"`
	CommitsBehind   int       `json:"commits_behind"`
	DaysSinceCommit int       `json:"days_since_commit"`
	Freshness       Freshness `json:"freshness"`
	TopAuthors      []string  `json:"top_authors,omitempty"`
}

// Provider is the capability the extractor depends on. It never fails; a
// repository without usable history yields Sentinel().
type Provider interface {
	History(path string) *History
}

// Sentinel is the history of a repository git knows nothing about.
func Sentinel() *History {
	return &History{Freshness: FreshnessUnknown}
}

// CLI implements Provider on top of the local git binary.
type CLI struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewCLI(logger *zap.Logger) *CLI {
	return &CLI{
		logger: logger,
		now:    time.Now,
	}
}

// History collects commit metadata for the repository at path. Individual git
// invocations that fail leave their fields zeroed; only a repository without a
// readable last commit collapses to the sentinel.
func (c *CLI) History(path string) *History {
	last, err := c.run(path, "log", "-1", "--format=%ct")
	if err != nil {
		c.debug(path, "no readable commit history", err)
		return Sentinel()
	}

	h := &History{}
	h.LastCommit = parseUnixTimestamp(last)
	if h.LastCommit.IsZero() {
		return Sentinel()
	}

	days := int(c.now().Sub(h.LastCommit).Hours() / 24)
	if days < 0 {
		days = 0
	}
	h.DaysSinceCommit = days
	h.Freshness = classifyFreshness(days)

	if out, err := c.run(path, "log", "--reverse", "--format=%ct"); err == nil {
		if lines := splitLines(out); len(lines) > 0 {
			h.FirstCommit = parseUnixTimestamp(lines[0])
		}
	} else {
		c.debug(path, "reading first commit", err)
	}

	if out, err := c.run(path, "rev-list", "--count", "HEAD"); err == nil {
		h.CommitCount, _ = strconv.Atoi(out)
	} else {
		c.debug(path, "counting commits", err)
	}

	if out, err := c.run(path, "rev-parse", "--abbrev-ref", "HEAD"); err == nil {
		h.Branch = out
	} else {
		c.debug(path, "resolving branch", err)
	}

	if out, err := c.run(path, "remote"); err == nil {
		h.HasRemote = out != ""
	} else {
		c.debug(path, "listing remotes", err)
	}

	// Only meaningful when an upstream tracking ref exists locally. A
	// missing upstream is an error from git and leaves the count at zero.
	if h.HasRemote {
		if out, err := c.run(path, "rev-list", "--count", "HEAD..@{upstream}"); err == nil {
			h.CommitsBehind, _ = strconv.Atoi(out)
		} else {
			c.debug(path, "counting commits behind upstream", err)
		}
	}

	if out, err := c.run(path, "log", "--format=%an"); err == nil {
		h.TopAuthors = topAuthors(splitLines(out), topAuthorsLimit)
	} else {
		c.debug(path, "listing authors", err)
	}

	return h
}

func (c *CLI) run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir

	out, err := cmd.Output()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(out)), nil
}

func (c *CLI) debug(path, msg string, err error) {
	if c.logger == nil {
		return
	}
	c.logger.Debug(msg, zap.String("repo", path), zap.Error(err))
}

func classifyFreshness(daysSinceCommit int) Freshness {
	switch {
	case daysSinceCommit > staleAfterDays:
		return FreshnessStale
	case daysSinceCommit > agingAfterDays:
		return FreshnessAging
	default:
		return FreshnessFresh
	}
}

func parseUnixTimestamp(s string) time.Time {
	sec, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || sec <= 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := make([]string, 0)
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// topAuthors tallies author names and returns the most frequent ones,
// breaking count ties alphabetically.
func topAuthors(names []string, limit int) []string {
	if len(names) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, name := range names {
		counts[name]++
	}

	authors := make([]string, 0, len(counts))
	for name := range counts {
		authors = append(authors, name)
	}

	sort.Slice(authors, func(i, j int) bool {
		if counts[authors[i]] != counts[authors[j]] {
			return counts[authors[i]] > counts[authors[j]]
		}
		return authors[i] < authors[j]
	})

	if len(authors) > limit {
		authors = authors[:limit]
	}
	return authors
}
