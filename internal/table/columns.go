package table

import (
	"strings"

	"github.com/jonathan/hiring-portal/internal/types"
)

// CandidateColumns exposes every value of a candidate, including its dynamic fields.
func CandidateColumns(c types.Candidate) map[string]string {
	return c.Columns()
}

// JobColumns exposes the searchable and sortable columns of a job.
func JobColumns(j types.Job) map[string]string {
	return map[string]string{
		"id":           j.ID,
		"slug":         j.Slug,
		"title":        j.Title,
		"department":   j.Department,
		"status":       string(j.Status),
		"description":  j.Description,
		"requirements": strings.Join(j.Requirements, "\n"),
		"salary":       j.SalaryRange.DisplayText,
		"created_at":   j.CreatedAt,
	}
}

// JobSearchColumns are the columns the job listings search in.
var JobSearchColumns = []string{"title", "department"}

// JobListingColumns exposes the columns shown on the job listing pages.
func JobListingColumns(j types.Job) map[string]string {
	return map[string]string{
		"title":      j.Title,
		"department": j.Department,
		"status":     string(j.Status),
		"created_at": j.CreatedAt,
	}
}
