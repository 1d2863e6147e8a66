package db

import (
	"time"

	"github.com/jonathan/hiring-portal/internal/types"
)

// Application is an archived candidate record.
type Application struct {
	ID          string         `json:"id"`
	JobID       string         `json:"job_id"`
	Fields      map[string]any `json:"fields"`
	AppliedDate time.Time      `json:"applied_date"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Candidate converts the row back into the domain record.
func (a Application) Candidate() types.Candidate {
	return types.Candidate{
		ID:          a.ID,
		JobID:       a.JobID,
		Fields:      a.Fields,
		AppliedDate: a.AppliedDate.Format(time.DateOnly),
	}
}
