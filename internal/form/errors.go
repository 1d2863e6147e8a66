package form

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrJobNotFound means the job id did not resolve; callers send the user back to the listing.
	ErrJobNotFound = errors.New("job not found")
	// ErrMalformedJob means the job has no usable field configuration.
	ErrMalformedJob = errors.New("job has no valid application form")
	// ErrNotLoaded is returned when the form is used before a job was loaded.
	ErrNotLoaded = errors.New("form is not loaded")
	// ErrUnknownField is returned when setting a key that is not part of the form.
	ErrUnknownField = errors.New("field is not part of this form")
	// ErrBusy is returned while a submission is in flight.
	ErrBusy = errors.New("submission already in progress")
	// ErrAlreadySubmitted is returned once the form reached Success.
	ErrAlreadySubmitted = errors.New("application already submitted")
)

// SummaryMessage is shown alongside the per-field messages.
const SummaryMessage = "Mohon lengkapi semua field yang wajib diisi!"

// FieldError is a single missing required field.
type FieldError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// ValidationError lists every required field left empty, in form order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, ", "))
}

// Messages returns the errors keyed by field.
func (e *ValidationError) Messages() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Key] = f.Message
	}
	return out
}

// requiredMessage is the inline message for a missing required field.
func requiredMessage(label string) string {
	return label + " wajib diisi"
}
