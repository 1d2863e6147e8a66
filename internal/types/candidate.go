package types

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
)

// Candidate is an application record. Fields has exactly the shape of the
// owning job's field configuration at the time of application.
type Candidate struct {
	ID          string         `json:"id"`
	JobID       string         `json:"job_id"`
	Fields      map[string]any `json:"fields"`
	AppliedDate string         `json:"applied_date"`
}

// Text returns the textual representation of a field value; nil becomes "".
func (c Candidate) Text(key string) string {
	v, ok := c.Fields[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Columns returns every value of the record as text, keyed by column name.
func (c Candidate) Columns() map[string]string {
	cols := make(map[string]string, len(c.Fields)+3)
	for k := range c.Fields {
		cols[k] = c.Text(k)
	}
	cols["id"] = c.ID
	cols["job_id"] = c.JobID
	cols["applied_date"] = c.AppliedDate
	return cols
}

// FieldKeys returns the keys of Fields in sorted order.
func (c Candidate) FieldKeys() []string {
	keys := make([]string, 0, len(c.Fields))
	for k := range c.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a copy with its own Fields map.
func (c Candidate) Clone() Candidate {
	out := c
	out.Fields = make(map[string]any, len(c.Fields))
	for k, v := range c.Fields {
		out.Fields[k] = v
	}
	return out
}

// SubmitApplicationRequest carries the raw form values for one job.
// Photo values are base64 data URLs; a JSON null leaves the value empty.
type SubmitApplicationRequest struct {
	Values map[string]*string `json:"values" validate:"required"`
}

// Validate validates the SubmitApplicationRequest using the validator.
func (r *SubmitApplicationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// SubmitApplicationResponse is returned once the form engine reaches Success.
type SubmitApplicationResponse struct {
	Candidate Candidate `json:"candidate"`
	Message   string    `json:"message"`
}

// FieldErrorsResponse is returned when required fields are missing.
type FieldErrorsResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}
