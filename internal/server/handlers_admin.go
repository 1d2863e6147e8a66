package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/hiring-portal/internal/catalog"
	"github.com/jonathan/hiring-portal/internal/table"
	"github.com/jonathan/hiring-portal/internal/types"
)

// AdminJob is a job with the number of applications it received.
type AdminJob struct {
	types.Job
	CandidateCount int `json:"candidate_count"`
}

// CreateJobResponse confirms a new posting.
type CreateJobResponse struct {
	Job     types.Job `json:"job"`
	Message string    `json:"message"`
}

// CandidatesResponse is one page of the candidate table plus the columns it
// can be sorted by.
type CandidatesResponse struct {
	table.Page[types.Candidate]
	Columns []types.Field `json:"columns"`
}

// handleAdminListJobs lists every job with search, status filter, sort and
// pagination.
func (s *Server) handleAdminListJobs(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	q, err := parseTableQuery(values, 0)
	if err != nil {
		s.failWith(w, err)
		return
	}
	q.SearchIn = table.JobSearchColumns
	if status := values.Get("status"); status != "" && status != "all" {
		if !types.JobStatus(status).Valid() {
			s.failWith(w, &ErrValidation{Field: "status", Message: "unknown status"})
			return
		}
		q.Filters = map[string]string{"status": status}
	}

	jobs := s.catalog.ListJobs()
	if q.PageSize == 0 {
		q.PageSize = max(len(jobs), 1)
	}
	page := table.View(jobs, table.JobListingColumns, q)

	counts := s.catalog.CandidateCounts()
	items := make([]AdminJob, 0, len(page.Items))
	for _, j := range page.Items {
		items = append(items, AdminJob{Job: j, CandidateCount: counts[j.ID]})
	}
	s.jsonResponse(w, http.StatusOK, table.Page[AdminJob]{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
		TotalCount: page.TotalCount,
		Empty:      page.Empty,
	})
}

// handleAdminCreateJob posts a new job built from field settings.
func (s *Server) handleAdminCreateJob(w http.ResponseWriter, r *http.Request) {
	var req types.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	job, err := s.catalog.CreateJob(req)
	if err != nil {
		s.failWith(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, CreateJobResponse{
		Job:     job,
		Message: fmt.Sprintf("Job %q berhasil dibuat!", job.Title),
	})
}

// handleAdminReplaceJob replaces a job wholesale. The path id wins over the
// body's.
func (s *Server) handleAdminReplaceJob(w http.ResponseWriter, r *http.Request) {
	var job types.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	job.ID = r.PathValue("id")

	if err := s.catalog.ReplaceJob(job); err != nil {
		s.failWith(w, err)
		return
	}
	stored, _ := s.catalog.FindJobByID(job.ID)
	s.jsonResponse(w, http.StatusOK, stored)
}

// handleAdminListCandidates pages through the candidates of one job, or of
// every job when ?job= is empty.
func (s *Server) handleAdminListCandidates(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	q, err := parseTableQuery(values, s.candidatePageSize())
	if err != nil {
		s.failWith(w, err)
		return
	}

	jobID := values.Get("job")
	var columns []types.Field
	if jobID != "" {
		job, ok := s.catalog.FindJobByID(jobID)
		if !ok {
			s.failWith(w, fmt.Errorf("%w: %s", catalog.ErrNotFound, jobID))
			return
		}
		columns = job.ApplicationForm.Fields
	}

	page := table.View(s.catalog.ListCandidatesByJob(jobID), table.CandidateColumns, q)
	s.jsonResponse(w, http.StatusOK, CandidatesResponse{Page: page, Columns: columns})
}

func (s *Server) candidatePageSize() int {
	if s.cfg.CandidatePageSize > 0 {
		return s.cfg.CandidatePageSize
	}
	return table.DefaultPageSize
}
