package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/hiring-portal/internal/capture"
	"github.com/jonathan/hiring-portal/internal/catalog"
	"github.com/jonathan/hiring-portal/internal/form"
	"github.com/jonathan/hiring-portal/internal/session"
	"github.com/stretchr/testify/assert"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "page", Message: "must be a positive integer"}
	assert.Equal(t, "validation error: page - must be a positive integer", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"field validation", &form.ValidationError{Fields: []form.FieldError{{Key: "email"}}}, http.StatusUnprocessableEntity},
		{"request validation", validator.ValidationErrors{}, http.StatusBadRequest},
		{"invalid job", fmt.Errorf("%w: bad", catalog.ErrInvalidJob), http.StatusBadRequest},
		{"unknown field", form.ErrUnknownField, http.StatusBadRequest},
		{"job not found", fmt.Errorf("%w: job_x", catalog.ErrNotFound), http.StatusNotFound},
		{"form job not found", form.ErrJobNotFound, http.StatusNotFound},
		{"malformed job", form.ErrMalformedJob, http.StatusNotFound},
		{"no session", session.ErrUnauthenticated, http.StatusUnauthorized},
		{"revoked", ErrTokenRevoked, http.StatusUnauthorized},
		{"wrong role", session.ErrForbidden, http.StatusForbidden},
		{"camera denied", capture.ErrPermissionDenied, http.StatusConflict},
		{"no camera", capture.ErrDeviceNotFound, http.StatusNotFound},
		{"not ready", capture.ErrNotReady, http.StatusConflict},
		{"busy", form.ErrBusy, http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestErrorBody(t *testing.T) {
	body := errorBody(fmt.Errorf("%w: job_x", catalog.ErrNotFound))
	assert.Equal(t, ListingPath, body.Redirect)

	body = errorBody(fmt.Errorf("field photo: %w", capture.ErrNotReady))
	assert.Empty(t, body.Redirect)
	assert.Contains(t, body.Error, "Video belum siap")

	body = errorBody(errors.New("pgx: connection refused"))
	assert.Equal(t, "internal server error", body.Error)
}
