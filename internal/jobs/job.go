// Package jobs holds the normalized job posting collection and the ingestion
// pipeline that feeds it from untrusted payloads.
package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Job is one normalized posting. ID is deterministic over the raw input, so
// re-ingesting identical data reproduces the same ID.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	URL         string    `json:"url,omitempty"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Salary      string    `json:"salary,omitempty"`
	Type        string    `json:"type,omitempty"`
	Remote      *bool     `json:"remote,omitempty"`
	Skills      []string  `json:"skills,omitempty"`
	Source      string    `json:"source,omitempty"`
	DatePosted  string    `json:"date_posted,omitempty"`
	DateAdded   time.Time `json:"date_added,omitempty"`
	Status      string    `json:"status,omitempty"`
}

// IsRemote resolves the tri-state remote flag, treating unknown as false.
func (j *Job) IsRemote() bool {
	return j.Remote != nil && *j.Remote
}

// Jobs is the persisted posting collection.
type Jobs struct {
	Items []*Job `json:"jobs"`
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

func (j *Jobs) FindByID(id string) *Job {
	for _, job := range j.Items {
		if job.ID == id {
			return job
		}
	}
	return nil
}

func (j *Jobs) IDs() []string {
	ids := make([]string, 0, len(j.Items))
	for _, job := range j.Items {
		ids = append(ids, job.ID)
	}
	return ids
}

func (j *Jobs) Append(items ...*Job) {
	j.Items = append(j.Items, items...)
}

// ReportByCompany groups postings for quick terminal review.
func (j *Jobs) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, job := range j.Items {
		entry := map[string]string{
			"title":    job.Title,
			"location": job.Location,
			"status":   job.Status,
		}
		if job.URL != "" {
			entry["url"] = job.URL
		}
		if job.Salary != "" {
			entry["salary"] = job.Salary
		}
		report[job.Company] = append(report[job.Company], entry)
	}
	return report
}

// DumpToTmpFile writes the collection to a temporary JSON file and returns
// its name.
func (j *Jobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(j); err != nil {
		return "", fmt.Errorf("encoding jobs: %w", err)
	}
	return file.Name(), nil
}
