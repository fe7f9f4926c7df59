package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectPatternsFromPaths(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "tests"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".github", "workflows"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Dockerfile"), []byte("FROM scratch"), 0o644))

	patterns := detectPatterns(root, nil)

	require.Equal(t, []string{"testing", "ci", "docker"}, patterns)
}

func TestDetectPatternsFromDependencies(t *testing.T) {
	deps := map[string][]string{
		EcosystemNPM: {"react", "@scoped/vite"},
		EcosystemGo:  {"github.com/spf13/cobra", "github.com/jackc/pgx"},
	}

	patterns := detectPatterns(t.TempDir(), deps)

	require.Equal(t, []string{"react", "cli", "bundler", "postgres"}, patterns)
}

func TestDetectPatternsDeduplicates(t *testing.T) {
	root := t.TempDir()
	// Both a tests and a spec directory map to the same tag.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "tests"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "spec"), 0o755))

	deps := map[string][]string{EcosystemNPM: {"jest"}}

	patterns := detectPatterns(root, deps)

	require.Equal(t, []string{"testing"}, patterns)
}

func TestDepNameMatches(t *testing.T) {
	require.True(t, depNameMatches("react", "react"))
	require.True(t, depNameMatches("github.com/spf13/cobra", "cobra"))
	require.True(t, depNameMatches("@scoped/vite", "vite"))
	require.False(t, depNameMatches("react-dom", "react"))
	require.False(t, depNameMatches("nginx-config", "gin"))
}
