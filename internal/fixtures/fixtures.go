// Package fixtures provides the read-only seed data of the hiring portal:
// job postings, candidate records and user credentials.
package fixtures

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/jonathan/hiring-portal/internal/schemas"
	"github.com/jonathan/hiring-portal/internal/types"
	schemafiles "github.com/jonathan/hiring-portal/schemas"
	"golang.org/x/sync/errgroup"
)

// File names of the three fixture documents.
const (
	JobsFile       = "jobs.json"
	CandidatesFile = "candidates.json"
	UsersFile      = "users.json"
)

//go:embed data/*.json
var embedded embed.FS

// Repository is an immutable view over the fixture documents. Every accessor
// returns copies, so callers can never change what other callers see.
type Repository struct {
	jobs       []types.Job
	candidates []types.Candidate
	users      []types.UserRecord
}

// New builds a repository from in-memory records. The slices are copied.
func New(jobs []types.Job, candidates []types.Candidate, users []types.UserRecord) *Repository {
	r := &Repository{
		jobs:       make([]types.Job, len(jobs)),
		candidates: make([]types.Candidate, len(candidates)),
		users:      append([]types.UserRecord(nil), users...),
	}
	for i, j := range jobs {
		r.jobs[i] = j.Clone()
	}
	for i, c := range candidates {
		r.candidates[i] = c.Clone()
	}
	return r
}

// LoadEmbedded loads the fixtures compiled into the binary.
func LoadEmbedded(ctx context.Context) (*Repository, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded fixtures: %w", err)
	}
	return Load(ctx, sub)
}

// LoadDir loads the fixtures from a directory on disk.
func LoadDir(ctx context.Context, dir string) (*Repository, error) {
	return Load(ctx, os.DirFS(dir))
}

// Load reads, schema-validates and decodes the three fixture documents
// concurrently.
func Load(ctx context.Context, fsys fs.FS) (*Repository, error) {
	var r Repository
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return readDocument(ctx, fsys, JobsFile, schemafiles.Jobs, &r.jobs)
	})
	g.Go(func() error {
		return readDocument(ctx, fsys, CandidatesFile, schemafiles.Candidates, &r.candidates)
	})
	g.Go(func() error {
		return readDocument(ctx, fsys, UsersFile, schemafiles.Users, &r.users)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := r.check(); err != nil {
		return nil, err
	}
	return &r, nil
}

func readDocument(ctx context.Context, fsys fs.FS, name, schemaName string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read fixture %s: %w", name, err)
	}
	if err := schemas.ValidateDocument(schemaName, data); err != nil {
		return fmt.Errorf("fixture %s is invalid: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode fixture %s: %w", name, err)
	}
	return nil
}

// check enforces the cross-document rules a schema cannot express.
func (r *Repository) check() error {
	jobIDs := make(map[string]bool, len(r.jobs))
	for _, j := range r.jobs {
		if jobIDs[j.ID] {
			return fmt.Errorf("%w: duplicate job id %s", ErrInvalid, j.ID)
		}
		jobIDs[j.ID] = true
		keys := make(map[string]bool, len(j.ApplicationForm.Fields))
		for _, f := range j.ApplicationForm.Fields {
			if keys[f.Key] {
				return fmt.Errorf("%w: job %s repeats field %s", ErrInvalid, j.ID, f.Key)
			}
			keys[f.Key] = true
		}
	}
	candIDs := make(map[string]bool, len(r.candidates))
	for _, c := range r.candidates {
		if candIDs[c.ID] {
			return fmt.Errorf("%w: duplicate candidate id %s", ErrInvalid, c.ID)
		}
		candIDs[c.ID] = true
		if !jobIDs[c.JobID] {
			return fmt.Errorf("%w: candidate %s references unknown job %s", ErrInvalid, c.ID, c.JobID)
		}
	}
	emails := make(map[string]bool, len(r.users))
	for _, u := range r.users {
		key := strings.ToLower(u.Email)
		if emails[key] {
			return fmt.Errorf("%w: duplicate user email %s", ErrInvalid, u.Email)
		}
		emails[key] = true
	}
	return nil
}

// FindJobByID returns the job with the given id.
func (r *Repository) FindJobByID(id string) (types.Job, bool) {
	for _, j := range r.jobs {
		if j.ID == id {
			return j.Clone(), true
		}
	}
	return types.Job{}, false
}

// ListJobs returns every job in fixture order.
func (r *Repository) ListJobs() []types.Job {
	out := make([]types.Job, len(r.jobs))
	for i, j := range r.jobs {
		out[i] = j.Clone()
	}
	return out
}

// ListCandidates returns every candidate in fixture order.
func (r *Repository) ListCandidates() []types.Candidate {
	out := make([]types.Candidate, len(r.candidates))
	for i, c := range r.candidates {
		out[i] = c.Clone()
	}
	return out
}

// ListCandidatesByJob returns the candidates that applied to jobID.
func (r *Repository) ListCandidatesByJob(jobID string) []types.Candidate {
	out := []types.Candidate{}
	for _, c := range r.candidates {
		if c.JobID == jobID {
			out = append(out, c.Clone())
		}
	}
	return out
}

// CandidateCounts returns the number of candidates per job id.
func (r *Repository) CandidateCounts() map[string]int {
	counts := make(map[string]int, len(r.jobs))
	for _, c := range r.candidates {
		counts[c.JobID]++
	}
	return counts
}

// FindUser looks up a credential record by email. The match is exact.
func (r *Repository) FindUser(email string) (types.UserRecord, bool) {
	for _, u := range r.users {
		if u.Email == email {
			return u, true
		}
	}
	return types.UserRecord{}, false
}
