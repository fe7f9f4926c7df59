package analyzer

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/spigell/skillscout/internal/gitinfo"
)

// Extractor produces one feature Record per repository. It never fails for a
// readable repository root: history falls back to the sentinel and unreadable
// subtrees are skipped during the walk.
type Extractor struct {
	git    gitinfo.Provider
	logger *zap.Logger
}

func NewExtractor(git gitinfo.Provider, logger *zap.Logger) *Extractor {
	return &Extractor{
		git:    git,
		logger: logger,
	}
}

// Extract analyzes the repository at path.
func (e *Extractor) Extract(path string) *Record {
	record := &Record{
		Name: filepath.Base(path),
		Path: path,
	}

	record.History = e.git.History(path)

	tally := tallyExtensions(path)
	record.Languages = classifyLanguages(tally)
	record.FileCounts = countFiles(tally)

	record.Dependencies = extractDependencies(path)
	record.Patterns = detectPatterns(path, record.Dependencies)

	if e.logger != nil {
		e.logger.Debug("extracted repository features",
			zap.String("repo", record.Name),
			zap.Int("files", record.FileCounts.Total),
			zap.Int("languages", len(record.Languages)),
			zap.Int("patterns", len(record.Patterns)),
			zap.String("freshness", string(record.History.Freshness)),
		)
	}

	return record
}
