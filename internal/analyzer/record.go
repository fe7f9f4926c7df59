// Package analyzer discovers local repositories and extracts the features the
// skills profile is built from: languages, dependencies, structural patterns
// and commit history.
package analyzer

import (
	"github.com/spigell/skillscout/internal/gitinfo"
)

// Record is the feature summary of one analyzed repository. It is immutable
// once produced; only the Excluded flag is flipped later by curation.
type Record struct {
	Name         string              `json:"name"`
	Path         string              `json:"path"`
	History      *gitinfo.History    `json:"history"`
	Languages    []Language          `json:"languages,omitempty"`
	Dependencies map[string][]string `json:"dependencies,omitempty"`
	Patterns     []string            `json:"patterns,omitempty"`
	FileCounts   FileCounts          `json:"file_counts"`
	Excluded     bool                `json:"excluded,omitempty"`
}

// Language is one entry of the per-repository language breakdown, ordered by
// file count. Percent is computed over classified files only and rounded, so
// percentages across a record do not necessarily sum to 100.
type Language struct {
	Name    string `json:"name"`
	Files   int    `json:"files"`
	Percent int    `json:"percent"`
}

// FileCounts buckets every walked file by extension. Files that fit no bucket
// still count towards Total.
type FileCounts struct {
	Total  int `json:"total"`
	Code   int `json:"code"`
	Config int `json:"config"`
	Docs   int `json:"docs"`
	Assets int `json:"assets"`
}
