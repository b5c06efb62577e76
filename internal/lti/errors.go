package lti

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/aspiredu/internal/access"
	"github.com/JaimeStill/aspiredu/pkg/listquery"
)

var (
	ErrUnknownProduct     = errors.New("unknown product")
	ErrProductURL         = errors.New("product url not configured")
	ErrInvalidRequest     = errors.New("invalid authentication request")
	ErrUnauthorizedClient = errors.New("unauthorized client")
	ErrRedirectURI        = errors.New("redirect uri not registered")
	ErrInvalidHint        = errors.New("invalid message hint")
	ErrLoginHint          = errors.New("login hint does not match")
)

// MapHTTPStatus maps launch errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnknownProduct),
		errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrUnauthorizedClient),
		errors.Is(err, ErrRedirectURI):
		return http.StatusBadRequest
	case errors.Is(err, ErrProductURL):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidHint), errors.Is(err, ErrLoginHint):
		return http.StatusUnauthorized
	case errors.Is(err, access.ErrUnknownUser):
		return access.MapHTTPStatus(err)
	}
	return listquery.MapHTTPStatus(err)
}
