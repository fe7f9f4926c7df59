package jobs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	defaultStatus  = "new"
	defaultType    = "full-time"
	unknownCompany = "Unknown Company"
	unknownTitle   = "Untitled Role"

	slugMaxLen = 40
	hashHexLen = 8
	dateLayout = "2006-01-02"
)

// IngestError reports an unreadable or unparsable payload. Per-entry problems
// never produce it; they are collected in the report instead.
type IngestError struct {
	Err error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("ingesting jobs payload: %v", e.Err)
}

func (e *IngestError) Unwrap() error { return e.Err }

// InvalidJob pairs a rejected raw entry with its validation errors.
type InvalidJob struct {
	Job    map[string]any `json:"job"`
	Errors []string       `json:"errors"`
}

// Report summarizes one bulk ingestion run.
type Report struct {
	RunID   string        `json:"run_id"`
	Added   int           `json:"added"`
	Skipped int           `json:"skipped"`
	Errors  []*InvalidJob `json:"errors,omitempty"`
}

// rawJob is the lenient shape a payload entry is decoded into. Skills stays
// untyped because payloads ship it either as an array or a comma-separated
// string.
type rawJob struct {
	Title       string `mapstructure:"title"`
	Company     string `mapstructure:"company"`
	URL         string `mapstructure:"url"`
	Description string `mapstructure:"description"`
	Location    string `mapstructure:"location"`
	Salary      string `mapstructure:"salary"`
	Type        string `mapstructure:"type"`
	Remote      *bool  `mapstructure:"remote"`
	Skills      any    `mapstructure:"skills"`
	Source      string `mapstructure:"source"`
	DatePosted  string `mapstructure:"date_posted"`
	Status      string `mapstructure:"status"`
}

// Ingestor validates, normalizes and deduplicates raw job payloads.
type Ingestor struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewIngestor(logger *zap.Logger) *Ingestor {
	return &Ingestor{
		logger: logger,
		now:    time.Now,
	}
}

// Ingest merges the payload into the existing collection. The payload is a
// JSON array of postings or an object wrapping one under "jobs". The returned
// collection is the full next persisted state (existing items first, new ones
// appended); the caller rewrites the whole store with it.
func (i *Ingestor) Ingest(payload []byte, existing *Jobs) (*Jobs, *Report, error) {
	entries, err := decodePayload(payload)
	if err != nil {
		return nil, nil, &IngestError{Err: err}
	}

	if existing == nil {
		existing = &Jobs{}
	}

	report := &Report{RunID: uuid.NewString()}

	known := make(map[string]bool, existing.Len())
	for _, id := range existing.IDs() {
		known[id] = true
	}

	updated := &Jobs{Items: append([]*Job(nil), existing.Items...)}

	for _, entry := range entries {
		raw, problems := decodeEntry(entry)
		if len(problems) > 0 {
			report.Errors = append(report.Errors, &InvalidJob{Job: entry, Errors: problems})
			continue
		}

		job := i.normalize(raw, entry)

		if known[job.ID] {
			report.Skipped++
			continue
		}

		known[job.ID] = true
		updated.Append(job)
		report.Added++
	}

	if i.logger != nil {
		i.logger.Info("ingestion finished",
			zap.String("run_id", report.RunID),
			zap.Int("added", report.Added),
			zap.Int("skipped", report.Skipped),
			zap.Int("invalid", len(report.Errors)),
		)
	}

	return updated, report, nil
}

// decodePayload accepts a top-level array or an object with a jobs array.
func decodePayload(payload []byte) ([]map[string]any, error) {
	var entries []map[string]any
	if err := json.Unmarshal(payload, &entries); err == nil {
		return entries, nil
	}

	var wrapper struct {
		Jobs []map[string]any `json:"jobs"`
	}
	if err := json.Unmarshal(payload, &wrapper); err != nil {
		return nil, fmt.Errorf("payload is neither a job array nor an object with a jobs array: %w", err)
	}
	if wrapper.Jobs == nil {
		return nil, fmt.Errorf("payload object has no jobs array")
	}

	return wrapper.Jobs, nil
}

// decodeEntry decodes one raw entry and runs required-field validation.
func decodeEntry(entry map[string]any) (*rawJob, []string) {
	var raw rawJob

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &raw,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, []string{err.Error()}
	}

	var problems []string
	if err := decoder.Decode(entry); err != nil {
		problems = append(problems, fmt.Sprintf("malformed entry: %v", err))
		return nil, problems
	}

	if strings.TrimSpace(raw.Title) == "" {
		problems = append(problems, "title is required")
	}
	if strings.TrimSpace(raw.Company) == "" {
		problems = append(problems, "company is required")
	}
	if raw.Skills != nil {
		switch raw.Skills.(type) {
		case []any, []string, string:
		default:
			problems = append(problems, "skills must be a list or a comma-separated string")
		}
	}

	if len(problems) > 0 {
		return nil, problems
	}
	return &raw, nil
}

// normalize produces the canonical job from a validated raw entry.
func (i *Ingestor) normalize(raw *rawJob, entry map[string]any) *Job {
	now := i.now()

	job := &Job{
		Title:       strings.TrimSpace(raw.Title),
		Company:     strings.TrimSpace(raw.Company),
		URL:         strings.TrimSpace(raw.URL),
		Description: raw.Description,
		Location:    strings.TrimSpace(raw.Location),
		Salary:      strings.TrimSpace(raw.Salary),
		Type:        strings.TrimSpace(raw.Type),
		Remote:      raw.Remote,
		Skills:      normalizeSkills(raw.Skills),
		Source:      strings.TrimSpace(raw.Source),
		DatePosted:  strings.TrimSpace(raw.DatePosted),
		DateAdded:   now,
		Status:      strings.TrimSpace(raw.Status),
	}

	// Validation already rejected missing values; the placeholders guard
	// against whitespace-only input slipping through.
	if job.Title == "" {
		job.Title = unknownTitle
	}
	if job.Company == "" {
		job.Company = unknownCompany
	}

	if job.Remote == nil && strings.Contains(strings.ToLower(job.Location), "remote") {
		remote := true
		job.Remote = &remote
	}

	if job.DatePosted == "" {
		job.DatePosted = now.Format(dateLayout)
	}
	if job.Status == "" {
		job.Status = defaultStatus
	}
	if job.Type == "" {
		job.Type = defaultType
	}

	job.ID = jobID(job.Company, job.Title, entry)

	return job
}

func normalizeSkills(value any) []string {
	var tokens []string

	switch v := value.(type) {
	case string:
		tokens = strings.Split(v, ",")
	case []string:
		tokens = v
	case []any:
		for _, item := range v {
			tokens = append(tokens, fmt.Sprint(item))
		}
	default:
		return nil
	}

	skills := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token = strings.ToLower(strings.TrimSpace(token)); token != "" {
			skills = append(skills, token)
		}
	}

	if len(skills) == 0 {
		return nil
	}
	return skills
}

// jobID builds the deterministic identifier: a slug of company and title plus
// a short hash of the serialized raw entry. encoding/json sorts map keys, so
// byte-identical input always reproduces the same hash while structurally
// different postings for the same company and title do not collide.
func jobID(company, title string, entry map[string]any) string {
	serialized, _ := json.Marshal(entry)
	sum := sha256.Sum256(serialized)

	return fmt.Sprintf("%s-%s", slugify(company+" "+title), hex.EncodeToString(sum[:])[:hashHexLen])
}

func slugify(s string) string {
	var b strings.Builder
	lastDash := true

	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}

	slug := strings.Trim(b.String(), "-")
	if len(slug) > slugMaxLen {
		slug = strings.Trim(slug[:slugMaxLen], "-")
	}
	if slug == "" {
		slug = "job"
	}
	return slug
}
