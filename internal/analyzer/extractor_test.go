package analyzer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spigell/skillscout/internal/gitinfo"
)

type stubGit struct {
	history *gitinfo.History
}

func (s *stubGit) History(string) *gitinfo.History {
	if s.history == nil {
		return gitinfo.Sentinel()
	}
	return s.history
}

func TestExtractProducesFullRecord(t *testing.T) {
	root := t.TempDir()
	repo := filepath.Join(root, "webapp")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, "tests"), 0o755))
	writeFiles(t, repo, "src/index.js", "src/app.js", "main.py", "README.md")
	writeManifest(t, repo, "package.json", `{"dependencies": {"react": "^18.0.0"}}`)

	history := &gitinfo.History{
		LastCommit:  time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		CommitCount: 42,
		Freshness:   gitinfo.FreshnessFresh,
	}

	extractor := NewExtractor(&stubGit{history: history}, nil)
	record := extractor.Extract(repo)

	require.Equal(t, "webapp", record.Name)
	require.Equal(t, repo, record.Path)
	require.Equal(t, history, record.History)

	require.Equal(t, []Language{
		{Name: "JavaScript", Files: 2, Percent: 50},
		{Name: "Markdown", Files: 1, Percent: 25},
		{Name: "Python", Files: 1, Percent: 25},
	}, record.Languages)

	require.Equal(t, []string{"react"}, record.Dependencies[EcosystemNPM])
	require.Equal(t, []string{"testing", "react"}, record.Patterns)

	// package.json counts as config on top of the four source files.
	require.Equal(t, FileCounts{Total: 5, Code: 3, Config: 1, Docs: 1}, record.FileCounts)
	require.False(t, record.Excluded)
}

func TestExtractWithoutHistoryUsesSentinel(t *testing.T) {
	repo := t.TempDir()
	writeFiles(t, repo, "main.go")

	record := NewExtractor(&stubGit{}, nil).Extract(repo)

	require.Equal(t, gitinfo.FreshnessUnknown, record.History.Freshness)
	require.Zero(t, record.History.CommitCount)
}
