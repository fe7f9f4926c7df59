package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, root, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
}

func TestExtractDependenciesNPM(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "package.json", `{
		"name": "demo",
		"dependencies": {"react": "^18.0.0", "express": "^4.18.0"},
		"devDependencies": {"jest": "^29.0.0"}
	}`)

	deps := extractDependencies(root)

	require.Equal(t, []string{"express", "jest", "react"}, deps[EcosystemNPM])
}

func TestExtractDependenciesMalformedNPM(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "package.json", `{"dependencies": [`)
	writeManifest(t, root, "requirements.txt", "requests==2.31.0\n")

	deps := extractDependencies(root)

	// The broken manifest yields an empty list without hurting the others.
	require.Contains(t, deps, EcosystemNPM)
	require.Empty(t, deps[EcosystemNPM])
	require.Equal(t, []string{"requests"}, deps[EcosystemPip])
}

func TestExtractDependenciesPip(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "requirements.txt", `
Django==4.2
requests>=2.28
# a comment
-r extra.txt
flask[async]; python_version > '3.8'
`)

	deps := extractDependencies(root)

	require.Equal(t, []string{"django", "requests", "flask"}, deps[EcosystemPip])
}

func TestExtractDependenciesPyproject(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "pyproject.toml", `
[project]
name = "demo"
dependencies = ["fastapi>=0.100", "uvicorn"]
`)

	deps := extractDependencies(root)

	require.Equal(t, []string{"fastapi", "uvicorn"}, deps[EcosystemPip])
}

func TestExtractDependenciesCargo(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "Cargo.toml", `
[package]
name = "demo"

[dependencies]
serde = "1"
tokio = { version = "1", features = ["full"] }

[dev-dependencies]
criterion = "0.5"
`)

	deps := extractDependencies(root)

	require.Equal(t, []string{"criterion", "serde", "tokio"}, deps[EcosystemCargo])
}

func TestExtractDependenciesGoMod(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "go.mod", `module example.com/demo

go 1.22

require (
	github.com/spf13/cobra v1.8.0
	go.uber.org/zap v1.27.0
)

require github.com/inconshreveable/mousetrap v1.1.0 // indirect
`)

	deps := extractDependencies(root)

	require.Equal(t, []string{"github.com/spf13/cobra", "go.uber.org/zap"}, deps[EcosystemGo])
}

func TestExtractDependenciesNoManifests(t *testing.T) {
	require.Nil(t, extractDependencies(t.TempDir()))
}
