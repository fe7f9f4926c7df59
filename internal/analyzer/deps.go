package analyzer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/modfile"
)

// Ecosystem names used as keys of Record.Dependencies.
const (
	EcosystemNPM   = "npm"
	EcosystemPip   = "pip"
	EcosystemCargo = "cargo"
	EcosystemGo    = "go"
)

// extractDependencies parses the manifests recognized at the repository root.
// Each ecosystem is parsed independently and best-effort: a malformed manifest
// yields an empty list for that ecosystem, never an error.
func extractDependencies(root string) map[string][]string {
	deps := make(map[string][]string)

	if data, err := os.ReadFile(filepath.Join(root, "package.json")); err == nil {
		deps[EcosystemNPM] = npmDependencies(data)
	}

	pip := make([]string, 0)
	seen := false
	if data, err := os.ReadFile(filepath.Join(root, "requirements.txt")); err == nil {
		pip = append(pip, requirementsDependencies(data)...)
		seen = true
	}
	if data, err := os.ReadFile(filepath.Join(root, "pyproject.toml")); err == nil {
		pip = append(pip, pyprojectDependencies(data)...)
		seen = true
	}
	if seen {
		deps[EcosystemPip] = dedupe(pip)
	}

	if data, err := os.ReadFile(filepath.Join(root, "Cargo.toml")); err == nil {
		deps[EcosystemCargo] = cargoDependencies(data)
	}

	if data, err := os.ReadFile(filepath.Join(root, "go.mod")); err == nil {
		deps[EcosystemGo] = goDependencies(data)
	}

	if len(deps) == 0 {
		return nil
	}
	return deps
}

func npmDependencies(data []byte) []string {
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}

	if err := json.Unmarshal(data, &manifest); err != nil {
		return []string{}
	}

	names := make([]string, 0, len(manifest.Dependencies)+len(manifest.DevDependencies))
	for name := range manifest.Dependencies {
		names = append(names, name)
	}
	for name := range manifest.DevDependencies {
		names = append(names, name)
	}

	sort.Strings(names)
	return dedupe(names)
}

// requirementsDependencies extracts package names from a pip requirements
// list, dropping version specifiers, extras and environment markers.
func requirementsDependencies(data []byte) []string {
	names := make([]string, 0)

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}

		name := line
		for _, sep := range []string{"==", ">=", "<=", "~=", "!=", ">", "<", "[", ";", " "} {
			if idx := strings.Index(name, sep); idx >= 0 {
				name = name[:idx]
			}
		}

		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			names = append(names, name)
		}
	}

	return names
}

func pyprojectDependencies(data []byte) []string {
	var manifest struct {
		Project struct {
			Dependencies []string `toml:"dependencies"`
		} `toml:"project"`
	}

	if err := toml.Unmarshal(data, &manifest); err != nil {
		return []string{}
	}

	return requirementsDependencies([]byte(strings.Join(manifest.Project.Dependencies, "\n")))
}

func cargoDependencies(data []byte) []string {
	var manifest struct {
		Dependencies    map[string]any `toml:"dependencies"`
		DevDependencies map[string]any `toml:"dev-dependencies"`
	}

	if err := toml.Unmarshal(data, &manifest); err != nil {
		return []string{}
	}

	names := make([]string, 0, len(manifest.Dependencies)+len(manifest.DevDependencies))
	for name := range manifest.Dependencies {
		names = append(names, name)
	}
	for name := range manifest.DevDependencies {
		names = append(names, name)
	}

	sort.Strings(names)
	return dedupe(names)
}

func goDependencies(data []byte) []string {
	file, err := modfile.ParseLax("go.mod", data, nil)
	if err != nil {
		return []string{}
	}

	names := make([]string, 0, len(file.Require))
	for _, req := range file.Require {
		if req.Indirect {
			continue
		}
		names = append(names, req.Mod.Path)
	}

	return names
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		result = append(result, name)
	}
	return result
}
