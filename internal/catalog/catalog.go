// Package catalog overlays the jobs and applications created while the
// process runs on top of the read-only fixture repository.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/hiring-portal/internal/fields"
	"github.com/jonathan/hiring-portal/internal/types"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	// ErrNotFound is returned for an unknown job id.
	ErrNotFound = errors.New("job not found")
	// ErrInvalidJob is returned when a job or create request is rejected.
	ErrInvalidJob = errors.New("invalid job")
)

// Currency of every salary range created here.
const Currency = "IDR"

// Source is the read-only seed data the catalog starts from.
type Source interface {
	FindJobByID(id string) (types.Job, bool)
	ListJobs() []types.Job
	ListCandidates() []types.Candidate
}

// Archive stores submitted applications beyond the life of the process.
type Archive interface {
	SaveApplication(ctx context.Context, c types.Candidate) error
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithArchive forwards every recorded application to a.
func WithArchive(a Archive) Option {
	return func(c *Catalog) { c.archive = a }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) { c.now = now }
}

// Catalog is safe for concurrent use.
type Catalog struct {
	mu        sync.RWMutex
	source    Source
	created   []types.Job          // newest first
	replaced  map[string]types.Job // replacements of fixture jobs
	submitted []types.Candidate
	archive   Archive
	now       func() time.Time
	lastID    int64
}

// New creates a catalog over source.
func New(source Source, opts ...Option) *Catalog {
	c := &Catalog{
		source:   source,
		replaced: map[string]types.Job{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var whitespace = regexp.MustCompile(`\s+`)

// Slug lowercases title and replaces whitespace runs with "-".
func Slug(title string) string {
	return whitespace.ReplaceAllString(strings.ToLower(title), "-")
}

var idr = message.NewPrinter(language.Indonesian)

// SalaryDisplay renders a range with Indonesian digit grouping, e.g.
// "Rp 7.000.000 - Rp 10.000.000".
func SalaryDisplay(lo, hi int64) string {
	return idr.Sprintf("Rp %d - Rp %d", lo, hi)
}

// CreateJob validates req and adds the resulting job in front of every other job.
func (c *Catalog) CreateJob(req types.CreateJobRequest) (types.Job, error) {
	if err := req.Validate(); err != nil {
		return types.Job{}, fmt.Errorf("%w: %w", ErrInvalidJob, err)
	}

	status := req.Status
	if status == "" {
		status = types.JobStatusDraft
	}
	form := fields.Build(fields.DefaultSettings())
	if req.Fields != nil {
		form = fields.BuildRaw(req.Fields)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	job := types.Job{
		ID:           c.nextID(now),
		Slug:         Slug(req.Title),
		Title:        req.Title,
		Department:   req.Department,
		Status:       status,
		Description:  req.Description,
		Requirements: splitLines(req.Requirements),
		SalaryRange: types.SalaryRange{
			Min:         req.SalaryMin,
			Max:         req.SalaryMax,
			Currency:    Currency,
			DisplayText: SalaryDisplay(req.SalaryMin, req.SalaryMax),
		},
		CreatedAt:       now.Format(time.DateOnly),
		ApplicationForm: types.ApplicationForm{Fields: form},
	}
	c.created = append([]types.Job{job}, c.created...)
	log.Printf("[catalog] created job %s (%s)", job.ID, job.Title)
	return job.Clone(), nil
}

// nextID returns job_<unix millis>, bumped when two jobs share a millisecond.
// Must be called with c.mu held.
func (c *Catalog) nextID(now time.Time) string {
	ms := now.UnixMilli()
	if ms <= c.lastID {
		ms = c.lastID + 1
	}
	c.lastID = ms
	return fmt.Sprintf("job_%d", ms)
}

func splitLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// ReplaceJob swaps the stored job with the same id for job.
func (c *Catalog) ReplaceJob(job types.Job) error {
	if !job.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidJob, job.Status)
	}
	if !fields.WellFormed(job.ApplicationForm.Fields) {
		return fmt.Errorf("%w: malformed application form", ErrInvalidJob)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, j := range c.created {
		if j.ID == job.ID {
			c.created[i] = job.Clone()
			return nil
		}
	}
	if _, ok := c.source.FindJobByID(job.ID); ok {
		c.replaced[job.ID] = job.Clone()
		return nil
	}
	return fmt.Errorf("%w: %s", ErrNotFound, job.ID)
}

// FindJobByID returns the current version of a job.
func (c *Catalog) FindJobByID(id string) (types.Job, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, j := range c.created {
		if j.ID == id {
			return j.Clone(), true
		}
	}
	if j, ok := c.replaced[id]; ok {
		return j.Clone(), true
	}
	return c.source.FindJobByID(id)
}

// ListJobs returns created jobs (newest first) followed by the fixture jobs.
func (c *Catalog) ListJobs() []types.Job {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seed := c.source.ListJobs()
	out := make([]types.Job, 0, len(c.created)+len(seed))
	for _, j := range c.created {
		out = append(out, j.Clone())
	}
	for _, j := range seed {
		if r, ok := c.replaced[j.ID]; ok {
			j = r.Clone()
		}
		out = append(out, j)
	}
	return out
}

// ListActiveJobs returns the jobs visible to applicants.
func (c *Catalog) ListActiveJobs() []types.Job {
	out := []types.Job{}
	for _, j := range c.ListJobs() {
		if j.IsActive() {
			out = append(out, j)
		}
	}
	return out
}

// RecordApplication stores a submitted candidate and forwards it to the archive.
func (c *Catalog) RecordApplication(ctx context.Context, cand types.Candidate) error {
	if _, ok := c.FindJobByID(cand.JobID); !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, cand.JobID)
	}
	if c.archive != nil {
		if err := c.archive.SaveApplication(ctx, cand); err != nil {
			return fmt.Errorf("failed to archive application %s: %w", cand.ID, err)
		}
	}

	c.mu.Lock()
	c.submitted = append(c.submitted, cand.Clone())
	c.mu.Unlock()
	return nil
}

// ListCandidates returns fixture candidates followed by submitted ones.
func (c *Catalog) ListCandidates() []types.Candidate {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := c.source.ListCandidates()
	for _, cand := range c.submitted {
		out = append(out, cand.Clone())
	}
	return out
}

// ListCandidatesByJob returns the candidates of one job. An empty jobID
// returns every candidate.
func (c *Catalog) ListCandidatesByJob(jobID string) []types.Candidate {
	all := c.ListCandidates()
	if jobID == "" {
		return all
	}
	out := []types.Candidate{}
	for _, cand := range all {
		if cand.JobID == jobID {
			out = append(out, cand)
		}
	}
	return out
}

// CandidateCounts returns the number of candidates per job id.
func (c *Catalog) CandidateCounts() map[string]int {
	counts := map[string]int{}
	for _, cand := range c.ListCandidates() {
		counts[cand.JobID]++
	}
	return counts
}
