package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/jonathan/hiring-portal/internal/capture"
	"github.com/jonathan/hiring-portal/internal/fields"
	"github.com/jonathan/hiring-portal/internal/form"
	"github.com/jonathan/hiring-portal/internal/server/middleware"
	"github.com/jonathan/hiring-portal/internal/types"
)

// SubmittedMessage is shown once an application was recorded.
const SubmittedMessage = "Lamaran Berhasil Dikirim!"

// handleSubmitApplication runs one form engine over the posted values and
// records the candidate on success.
func (s *Server) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	jobID := r.PathValue("id")

	var req types.SubmitApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.failWith(w, err)
		return
	}

	engine := form.New(form.Options{Latency: s.cfg.SubmitLatency})
	if err := engine.Load(ctx, activeJobs{s.catalog}, jobID); err != nil {
		s.failWith(w, err)
		return
	}

	for key, value := range req.Values {
		if value == nil {
			continue
		}
		if fields.KindFor(key) == fields.KindCapture && *value != "" {
			if _, err := capture.ParseDataURL(*value); err != nil {
				s.failWith(w, fmt.Errorf("field %s: %w", key, errors.Join(capture.ErrNotReady, err)))
				return
			}
		}
		if err := engine.Set(key, *value); err != nil {
			s.failWith(w, err)
			return
		}
	}

	sub, err := engine.Submit(ctx)
	var verr *form.ValidationError
	if errors.As(err, &verr) {
		s.jsonResponse(w, http.StatusUnprocessableEntity, types.FieldErrorsResponse{
			Error:  form.SummaryMessage,
			Fields: verr.Messages(),
		})
		return
	}
	if err != nil {
		if ctx.Err() != nil {
			log.Printf("[apply] client went away while submitting to %s", jobID)
			return
		}
		s.failWith(w, err)
		return
	}

	if err := s.catalog.RecordApplication(ctx, sub.Candidate); err != nil {
		s.failWith(w, err)
		return
	}
	if sess, ok := middleware.GetSession(r); ok {
		log.Printf("[apply] %s applied to %s as %s", sess.Email, jobID, sub.Candidate.ID)
	}

	s.jsonResponse(w, http.StatusCreated, types.SubmitApplicationResponse{
		Candidate: sub.Candidate,
		Message:   SubmittedMessage,
	})
}
