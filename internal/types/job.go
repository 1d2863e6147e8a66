package types

import (
	"github.com/go-playground/validator/v10"
)

// JobStatus controls whether a posting is visible to applicants.
type JobStatus string

const (
	JobStatusDraft    JobStatus = "draft"
	JobStatusActive   JobStatus = "active"
	JobStatusInactive JobStatus = "inactive"
)

// Valid reports whether s is one of the known statuses.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusDraft, JobStatusActive, JobStatusInactive:
		return true
	}
	return false
}

// Job represents a job posting as stored in the fixtures and served over the API.
type Job struct {
	ID              string          `json:"id"`
	Slug            string          `json:"slug"`
	Title           string          `json:"title"`
	Department      string          `json:"department"`
	Status          JobStatus       `json:"status"`
	Description     string          `json:"description"`
	Requirements    []string        `json:"requirements"`
	SalaryRange     SalaryRange     `json:"salary_range"`
	CreatedAt       string          `json:"created_at"` // YYYY-MM-DD
	ApplicationForm ApplicationForm `json:"application_form"`
}

// SalaryRange is the advertised pay band. DisplayText is precomputed when the job is created.
type SalaryRange struct {
	Min         int64  `json:"min"`
	Max         int64  `json:"max"`
	Currency    string `json:"currency"`
	DisplayText string `json:"display_text"`
}

// ApplicationForm holds the field configuration an applicant must fill in.
type ApplicationForm struct {
	Fields []Field `json:"fields"`
}

// Field is a single entry of a job's field configuration.
type Field struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
}

// Clone returns a deep copy so callers can never mutate shared fixture state.
func (j Job) Clone() Job {
	out := j
	if j.Requirements != nil {
		out.Requirements = append([]string(nil), j.Requirements...)
	}
	if j.ApplicationForm.Fields != nil {
		out.ApplicationForm.Fields = append([]Field(nil), j.ApplicationForm.Fields...)
	}
	return out
}

// IsActive reports whether the job is listed publicly.
func (j Job) IsActive() bool {
	return j.Status == JobStatusActive
}

// CreateJobRequest is the admin payload for posting a new job.
// Fields maps a known field key to mandatory, optional or off.
type CreateJobRequest struct {
	Title        string            `json:"title" validate:"required"`
	Department   string            `json:"department" validate:"required"`
	Description  string            `json:"description,omitempty"`
	Requirements string            `json:"requirements,omitempty"` // newline separated
	Status       JobStatus         `json:"status" validate:"omitempty,oneof=draft active inactive"`
	SalaryMin    int64             `json:"salary_min" validate:"required,gt=0"`
	SalaryMax    int64             `json:"salary_max" validate:"required,gtefield=SalaryMin"`
	Fields       map[string]string `json:"fields,omitempty" validate:"omitempty,dive,oneof=mandatory optional off"`
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
