package listquery

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors wrapped by the typed errors below. Match them with errors.Is.
var (
	ErrValidation   = errors.New("invalid query")
	ErrUnauthorized = errors.New("permission denied")
	ErrNotFound     = errors.New("not found")
)

// ValidationError reports a malformed query parameter.
// Allowed is empty when the parameter is not an enumeration.
type ValidationError struct {
	Param   string
	Value   string
	Allowed []string
}

func (e *ValidationError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("invalid value for %s parameter (value: %s)", e.Param, e.Value)
	}
	return fmt.Sprintf(
		"invalid value for %s parameter (value: %s), allowed values are: %s",
		e.Param, e.Value, strings.Join(e.Allowed, ","),
	)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid returns a ValidationError for param.
func Invalid(param, value string, allowed ...string) error {
	return &ValidationError{Param: param, Value: value, Allowed: allowed}
}

// AuthorizationError reports a requester lacking the capability an operation requires.
type AuthorizationError struct {
	Capability string
}

func (e *AuthorizationError) Error() string {
	if e.Capability == "" {
		return ErrUnauthorized.Error()
	}
	return fmt.Sprintf("%s: requires %s", ErrUnauthorized, e.Capability)
}

func (e *AuthorizationError) Unwrap() error { return ErrUnauthorized }

// Forbidden returns an AuthorizationError for capability.
func Forbidden(capability string) error {
	return &AuthorizationError{Capability: capability}
}

// NotFoundError reports a referenced entity missing from the data source.
type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %v", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NotFound returns a NotFoundError for the entity identified by id.
func NotFound(entity string, id any) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// MapHTTPStatus maps list query errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
