// Package form implements the dynamic application form: it loads a job's field
// configuration, collects values, validates required fields and produces the
// submission payload.
package form

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/hiring-portal/internal/fields"
	"github.com/jonathan/hiring-portal/internal/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// State is the lifecycle of one application session.
type State string

const (
	StateLoading          State = "loading"
	StateReady            State = "ready"
	StateValidationFailed State = "validation_failed"
	StateSubmitting       State = "submitting"
	StateSuccess          State = "success"
)

// DefaultLatency models the network round trip of a submission.
const DefaultLatency = 1500 * time.Millisecond

var tracer = otel.Tracer("github.com/jonathan/hiring-portal/internal/form")

// JobFinder resolves a job by id.
type JobFinder interface {
	FindJobByID(id string) (types.Job, bool)
}

// Options configures an Engine. Zero values use the defaults.
type Options struct {
	// Latency is waited before a valid submission succeeds. Negative disables it.
	Latency time.Duration
	Now     func() time.Time
	NewID   func() string
}

// Submission is the result of a successful submit.
type Submission struct {
	JobID     string          `json:"job_id"`
	Payload   map[string]any  `json:"payload"`
	Candidate types.Candidate `json:"candidate"`
}

// Engine is the state machine behind one application form. It is safe for
// concurrent use; at most one submission is in flight at a time.
type Engine struct {
	mu          sync.Mutex
	state       State
	job         types.Job
	descriptors []fields.Descriptor
	values      map[string]string
	errors      map[string]string
	opts        Options
}

// New creates an engine in the Loading state.
func New(opts Options) *Engine {
	if opts.Latency == 0 {
		opts.Latency = DefaultLatency
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.NewString() }
	}
	return &Engine{
		state:  StateLoading,
		values: map[string]string{},
		errors: map[string]string{},
		opts:   opts,
	}
}

// Load resolves the job and moves to Ready with every value set to "".
// On failure the engine stays in Loading.
func (e *Engine) Load(ctx context.Context, finder JobFinder, jobID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	job, ok := finder.FindJobByID(jobID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	if !fields.WellFormed(job.ApplicationForm.Fields) {
		return fmt.Errorf("%w: %s", ErrMalformedJob, jobID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.job = job.Clone()
	e.descriptors = fields.Describe(e.job.ApplicationForm.Fields)
	e.values = make(map[string]string, len(e.descriptors))
	for _, d := range e.descriptors {
		e.values[d.Key] = ""
	}
	e.errors = map[string]string{}
	e.state = StateReady
	return nil
}

// Set stores a value and clears that field's error. Editing after a failed
// validation returns the engine to Ready.
func (e *Engine) Set(key, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateLoading:
		return ErrNotLoaded
	case StateSubmitting:
		return ErrBusy
	case StateSuccess:
		return ErrAlreadySubmitted
	}

	if _, ok := e.descriptor(key); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	e.values[key] = value
	delete(e.errors, key)
	if e.state == StateValidationFailed {
		e.state = StateReady
	}
	return nil
}

// Submit validates the form. When a required field is empty it moves to
// ValidationFailed and returns a *ValidationError. Otherwise it moves to
// Submitting, waits the configured latency and ends in Success. A cancelled
// context during the wait returns the engine to Ready.
func (e *Engine) Submit(ctx context.Context) (Submission, error) {
	ctx, span := tracer.Start(ctx, "form.Submit")
	defer span.End()

	e.mu.Lock()
	switch e.state {
	case StateLoading:
		e.mu.Unlock()
		return Submission{}, ErrNotLoaded
	case StateSubmitting:
		e.mu.Unlock()
		return Submission{}, ErrBusy
	case StateSuccess:
		e.mu.Unlock()
		return Submission{}, ErrAlreadySubmitted
	}
	span.SetAttributes(attribute.String("job.id", e.job.ID))

	if verr := e.validate(); verr != nil {
		e.errors = verr.Messages()
		e.state = StateValidationFailed
		e.mu.Unlock()
		span.SetAttributes(attribute.Int("form.missing_fields", len(verr.Fields)))
		span.SetStatus(codes.Error, "validation failed")
		return Submission{}, verr
	}

	e.errors = map[string]string{}
	e.state = StateSubmitting
	sub := e.submission()
	e.mu.Unlock()

	if err := e.wait(ctx); err != nil {
		e.mu.Lock()
		e.state = StateReady
		e.mu.Unlock()
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission cancelled")
		return Submission{}, err
	}

	e.mu.Lock()
	e.state = StateSuccess
	e.mu.Unlock()

	log.Printf("[form] application %s submitted for job %s", sub.Candidate.ID, sub.JobID)
	return sub, nil
}

func (e *Engine) wait(ctx context.Context) error {
	if e.opts.Latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(e.opts.Latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// validate must be called with e.mu held.
func (e *Engine) validate() *ValidationError {
	var missing []FieldError
	for _, d := range e.descriptors {
		if d.Required && d.Kind.IsEmpty(e.values[d.Key]) {
			missing = append(missing, FieldError{Key: d.Key, Message: requiredMessage(d.Label)})
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Fields: missing}
}

// submission must be called with e.mu held.
func (e *Engine) submission() Submission {
	payload := make(map[string]any, len(e.descriptors))
	for _, d := range e.descriptors {
		payload[d.Key] = d.Kind.Payload(e.values[d.Key])
	}
	candidate := types.Candidate{
		ID:          e.opts.NewID(),
		JobID:       e.job.ID,
		Fields:      payload,
		AppliedDate: e.opts.Now().Format(time.DateOnly),
	}
	return Submission{
		JobID:     e.job.ID,
		Payload:   candidate.Clone().Fields,
		Candidate: candidate,
	}
}

func (e *Engine) descriptor(key string) (fields.Descriptor, bool) {
	for _, d := range e.descriptors {
		if d.Key == key {
			return d, true
		}
	}
	return fields.Descriptor{}, false
}

// State returns the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Job returns the loaded job.
func (e *Engine) Job() types.Job {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.job.Clone()
}

// Fields returns the descriptors of the loaded form in configuration order.
func (e *Engine) Fields() []fields.Descriptor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]fields.Descriptor(nil), e.descriptors...)
}

// Values returns a copy of the current values.
func (e *Engine) Values() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]string, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Errors returns a copy of the outstanding per-field errors.
func (e *Engine) Errors() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]string, len(e.errors))
	for k, v := range e.errors {
		out[k] = v
	}
	return out
}
