// Package store persists the analyzed records, the skills profile and the
// job collection as JSON documents. A missing or corrupted document is
// treated as absent, never as an error.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/spigell/skillscout/internal/analyzer"
	"github.com/spigell/skillscout/internal/jobs"
	"github.com/spigell/skillscout/internal/skills"
)

const (
	recordsFile = "repos.json"
	profileFile = "profile.json"
	jobsFile    = "jobs.json"

	dirPerm  = 0o755
	filePerm = 0o644
)

// Store is the persistence collaborator the commands depend on.
type Store interface {
	LoadRecords() ([]*analyzer.Record, error)
	SaveRecords([]*analyzer.Record) error
	LoadProfile() (*skills.Profile, error)
	SaveProfile(*skills.Profile) error
	LoadJobs() (*jobs.Jobs, error)
	SaveJobs(*jobs.Jobs) error
}

// FileStore keeps every document under one data directory.
type FileStore struct {
	dir    string
	logger *zap.Logger
}

func NewFileStore(dir string, logger *zap.Logger) *FileStore {
	return &FileStore{
		dir:    dir,
		logger: logger,
	}
}

func (s *FileStore) LoadRecords() ([]*analyzer.Record, error) {
	var records []*analyzer.Record
	if !s.load(recordsFile, &records) {
		return nil, nil
	}
	return records, nil
}

func (s *FileStore) SaveRecords(records []*analyzer.Record) error {
	return s.save(recordsFile, records)
}

func (s *FileStore) LoadProfile() (*skills.Profile, error) {
	var profile *skills.Profile
	if !s.load(profileFile, &profile) {
		return nil, nil
	}
	return profile, nil
}

func (s *FileStore) SaveProfile(profile *skills.Profile) error {
	return s.save(profileFile, profile)
}

func (s *FileStore) LoadJobs() (*jobs.Jobs, error) {
	list := &jobs.Jobs{}
	if !s.load(jobsFile, list) {
		return &jobs.Jobs{}, nil
	}
	return list, nil
}

func (s *FileStore) SaveJobs(list *jobs.Jobs) error {
	return s.save(jobsFile, list)
}

// load reads a document into target and reports whether target holds usable
// data. Missing files and corrupted documents both come back false; the
// latter is logged and otherwise treated as absent.
func (s *FileStore) load(name string, target any) bool {
	path := filepath.Join(s.dir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	if err := json.Unmarshal(data, target); err != nil {
		if s.logger != nil {
			s.logger.Debug("ignoring corrupted store document",
				zap.String("path", path),
				zap.Error(err),
			)
		}
		return false
	}

	return true
}

// save writes the document atomically: temp file first, then rename.
func (s *FileStore) save(name string, value any) error {
	if err := os.MkdirAll(s.dir, dirPerm); err != nil {
		return fmt.Errorf("creating data dir %s: %w", s.dir, err)
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Chmod(tmp.Name(), filePerm); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), filepath.Join(s.dir, name))
}
