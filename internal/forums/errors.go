package forums

import "github.com/JaimeStill/aspiredu/pkg/listquery"

// Warning codes attached to excluded records.
const (
	WarningHiddenPost       = "1"
	WarningNoViewDiscussion = "nopermission"
)

// MapHTTPStatus maps forum errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	return listquery.MapHTTPStatus(err)
}
