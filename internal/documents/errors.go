package documents

import (
	"errors"
	"net/http"
)

// Domain errors for document operations.
var (
	ErrNotFound       = errors.New("document not found")
	ErrDuplicate      = errors.New("document already exists")
	ErrFileTooLarge   = errors.New("file exceeds maximum upload size")
	ErrInvalidFile    = errors.New("invalid file")
	ErrInvalidRequest = errors.New("invalid generation request")
	ErrNotReviewable  = errors.New("document is not awaiting review")
	ErrNotRunnable    = errors.New("document is not in a runnable state")
	ErrNoContent      = errors.New("document content has not been generated")
	ErrNoSource       = errors.New("document has no source file")
)

// MapHTTPStatus maps document domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidFile), errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotReviewable), errors.Is(err, ErrNotRunnable), errors.Is(err, ErrNoContent):
		return http.StatusConflict
	case errors.Is(err, ErrNoSource):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
