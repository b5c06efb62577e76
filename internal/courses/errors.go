package courses

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/aspiredu/pkg/listquery"
)

// ErrModuleName reports a module type name that cannot name an activity table.
var ErrModuleName = errors.New("invalid module name")

// MapHTTPStatus maps course errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrModuleName) {
		return http.StatusBadRequest
	}
	return listquery.MapHTTPStatus(err)
}
