package settings

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/aspiredu/pkg/listquery"
)

// ErrContextLevel is returned for a context level the LMS does not define.
var ErrContextLevel = errors.New("unknown context level")

// MapHTTPStatus maps settings errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrContextLevel) {
		return http.StatusBadRequest
	}
	return listquery.MapHTTPStatus(err)
}
