package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/alamana-org/charity-server/pkg/charity"
)

// ErrorResponse is the JSON body for failed requests
type ErrorResponse struct {
	Error string `json:"error"`
}

var (
	errInvalidBody = errors.New("invalid request body")
	errInvalidID   = errors.New("invalid id")
)

// respondError translates domain errors to HTTP statuses. Unrecognized
// errors are logged and reported as a generic 500 so internals never leak.
func respondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var status int
	var message string

	switch {
	case errors.Is(err, charity.ErrMissingField),
		errors.Is(err, charity.ErrMissingFile):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, errInvalidForm), errors.Is(err, errInvalidBody), errors.Is(err, errInvalidID):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, charity.ErrSelfSwap):
		status = http.StatusBadRequest
		message = charity.ErrSelfSwap.Error()
	case errors.Is(err, charity.ErrProductNotFound),
		errors.Is(err, charity.ErrContentPostNotFound),
		errors.Is(err, charity.ErrCarouselImageNotFound),
		errors.Is(err, charity.ErrPageContentNotFound),
		errors.Is(err, charity.ErrPageDocumentNotFound),
		errors.Is(err, charity.ErrUserNotFound):
		status = http.StatusNotFound
		message = "not found"
	case errors.Is(err, charity.ErrRangConflict):
		status = http.StatusConflict
		message = "rank position already taken, refresh and retry"
	case errors.Is(err, charity.ErrDuplicateEmail):
		status = http.StatusConflict
		message = charity.ErrDuplicateEmail.Error()
	case errors.Is(err, charity.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = charity.ErrInvalidCredentials.Error()
	default:
		status = http.StatusInternalServerError
		message = "internal server error"
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: message})
}
