package analyzer

import (
	"os"
	"path/filepath"
	"strings"
)

type pathRule struct {
	path string
	tag  string
}

// Path rules are checked for plain existence relative to the repository root.
// Order matters: it is the insertion order of the resulting pattern set.
var pathRules = []pathRule{
	{"tests", "testing"},
	{"test", "testing"},
	{"__tests__", "testing"},
	{"spec", "testing"},
	{".github/workflows", "ci"},
	{".gitlab-ci.yml", "ci"},
	{".circleci", "ci"},
	{"Dockerfile", "docker"},
	{"docker-compose.yml", "docker"},
	{"compose.yaml", "docker"},
	{"Makefile", "make"},
	{"kubernetes", "kubernetes"},
	{"k8s", "kubernetes"},
	{"helm", "kubernetes"},
	{"terraform", "terraform"},
	{"main.tf", "terraform"},
	{"migrations", "migrations"},
	{"docs", "documentation"},
	{".env.example", "dotenv"},
}

type depRule struct {
	dep string
	tag string
}

// Dependency rules match declared package names. A name matches on the full
// (lowercased) name or, for path-shaped names like Go module paths and scoped
// npm packages, on the last path segment.
var depRules = []depRule{
	{"react", "react"},
	{"next", "nextjs"},
	{"vue", "vue"},
	{"svelte", "svelte"},
	{"express", "express"},
	{"fastify", "fastify"},
	{"django", "django"},
	{"flask", "flask"},
	{"fastapi", "fastapi"},
	{"gin", "gin"},
	{"cobra", "cli"},
	{"jest", "testing"},
	{"vitest", "testing"},
	{"mocha", "testing"},
	{"pytest", "testing"},
	{"testify", "testing"},
	{"webpack", "bundler"},
	{"vite", "bundler"},
	{"tailwindcss", "tailwind"},
	{"pg", "postgres"},
	{"pgx", "postgres"},
	{"psycopg2", "postgres"},
	{"sqlalchemy", "postgres"},
	{"mongoose", "mongodb"},
	{"pymongo", "mongodb"},
	{"redis", "redis"},
	{"gorm", "gorm"},
	{"tokio", "tokio"},
	{"actix-web", "actix"},
}

// detectPatterns unions path-based and dependency-based convention tags,
// preserving first-seen order and suppressing duplicates.
func detectPatterns(root string, deps map[string][]string) []string {
	seen := make(map[string]bool)
	patterns := make([]string, 0)

	add := func(tag string) {
		if !seen[tag] {
			seen[tag] = true
			patterns = append(patterns, tag)
		}
	}

	for _, rule := range pathRules {
		if _, err := os.Stat(filepath.Join(root, rule.path)); err == nil {
			add(rule.tag)
		}
	}

	for _, rule := range depRules {
		for _, names := range deps {
			for _, name := range names {
				if depNameMatches(name, rule.dep) {
					add(rule.tag)
				}
			}
		}
	}

	if len(patterns) == 0 {
		return nil
	}
	return patterns
}

func depNameMatches(name, target string) bool {
	name = strings.ToLower(name)
	if name == target {
		return true
	}
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		return name[idx+1:] == target
	}
	return false
}
