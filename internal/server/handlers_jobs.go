package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jonathan/hiring-portal/internal/catalog"
	"github.com/jonathan/hiring-portal/internal/fields"
	"github.com/jonathan/hiring-portal/internal/table"
	"github.com/jonathan/hiring-portal/internal/types"
)

// FormResponse describes the controls an applicant has to fill in.
type FormResponse struct {
	Job    types.Job           `json:"job"`
	Fields []fields.Descriptor `json:"fields"`
}

// activeJobs narrows the catalog to what applicants may see.
type activeJobs struct {
	*catalog.Catalog
}

// FindJobByID hides jobs that are not active.
func (a activeJobs) FindJobByID(id string) (types.Job, bool) {
	job, ok := a.Catalog.FindJobByID(id)
	if !ok || !job.IsActive() {
		return types.Job{}, false
	}
	return job, true
}

// handleListActiveJobs lists active jobs, searching title and department.
func (s *Server) handleListActiveJobs(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("q")
	jobs := s.catalog.ListActiveJobs()
	// the public listing is a single page
	page := table.View(jobs, table.JobListingColumns, table.Query{
		Search:   search,
		SearchIn: table.JobSearchColumns,
		PageSize: max(len(jobs), 1),
	})
	s.jsonResponse(w, http.StatusOK, page)
}

// handleGetActiveJob returns one active job.
func (s *Server) handleGetActiveJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	job, ok := activeJobs{s.catalog}.FindJobByID(id)
	if !ok {
		s.failWith(w, fmt.Errorf("%w: %s", catalog.ErrNotFound, id))
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handleGetForm returns the field descriptors of an active job.
func (s *Server) handleGetForm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	job, ok := activeJobs{s.catalog}.FindJobByID(id)
	if !ok {
		s.failWith(w, fmt.Errorf("%w: %s", catalog.ErrNotFound, id))
		return
	}
	s.jsonResponse(w, http.StatusOK, FormResponse{
		Job:    job,
		Fields: fields.Describe(job.ApplicationForm.Fields),
	})
}

// parseTableQuery reads q, sort, dir, page and page_size.
func parseTableQuery(values url.Values, defaultPageSize int) (table.Query, error) {
	q := table.Query{
		Search:   values.Get("q"),
		SortKey:  values.Get("sort"),
		Page:     1,
		PageSize: defaultPageSize,
	}

	switch dir := table.Direction(values.Get("dir")); dir {
	case "", table.Asc:
		q.Direction = table.Asc
	case table.Desc:
		q.Direction = table.Desc
	default:
		return table.Query{}, &ErrValidation{Field: "dir", Message: "must be asc or desc"}
	}

	for _, p := range []struct {
		name string
		dst  *int
	}{{"page", &q.Page}, {"page_size", &q.PageSize}} {
		raw := values.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return table.Query{}, &ErrValidation{Field: p.name, Message: "must be a positive integer"}
		}
		*p.dst = n
	}
	return q, nil
}
