package access

import (
	"errors"
	"net/http"
)

// Errors returned while authenticating a caller.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrUnknownUser     = errors.New("no active LMS user matches the token")
	ErrUserField       = errors.New("unsupported user field")
)

// MapHTTPStatus maps access errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrUnauthenticated) || errors.Is(err, ErrUnknownUser) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrUserField) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
