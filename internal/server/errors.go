package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/hiring-portal/internal/capture"
	"github.com/jonathan/hiring-portal/internal/catalog"
	"github.com/jonathan/hiring-portal/internal/form"
	"github.com/jonathan/hiring-portal/internal/session"
)

// ListingPath is where a client is sent when the job it asked for is gone.
const ListingPath = "/jobs"

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var verr *ErrValidation
	var fieldErrs *form.ValidationError
	var reqErrs validator.ValidationErrors

	switch {
	case errors.As(err, &fieldErrs):
		return http.StatusUnprocessableEntity
	case errors.As(err, &verr), errors.As(err, &reqErrs),
		errors.Is(err, catalog.ErrInvalidJob), errors.Is(err, form.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, form.ErrJobNotFound),
		errors.Is(err, form.ErrMalformedJob), errors.Is(err, capture.ErrDeviceNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrUnauthenticated), errors.Is(err, ErrTokenRevoked):
		return http.StatusUnauthorized
	case errors.Is(err, session.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, capture.ErrPermissionDenied), errors.Is(err, capture.ErrNotReady),
		errors.Is(err, form.ErrBusy), errors.Is(err, form.ErrAlreadySubmitted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorBody builds the response for err. Missing jobs carry a redirect hint
// back to the listing.
func errorBody(err error) ErrorResponse {
	body := ErrorResponse{Error: err.Error()}
	if errors.Is(err, catalog.ErrNotFound) || errors.Is(err, form.ErrJobNotFound) || errors.Is(err, form.ErrMalformedJob) {
		body.Redirect = ListingPath
	}
	if isCaptureError(err) {
		body.Error = capture.Message(err)
	}
	if HTTPStatus(err) == http.StatusInternalServerError {
		body.Error = "internal server error"
	}
	return body
}

func isCaptureError(err error) bool {
	return errors.Is(err, capture.ErrPermissionDenied) ||
		errors.Is(err, capture.ErrDeviceNotFound) ||
		errors.Is(err, capture.ErrNotReady)
}
