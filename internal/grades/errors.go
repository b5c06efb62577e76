package grades

import "github.com/JaimeStill/aspiredu/pkg/listquery"

// WarningHiddenItem marks a grade item excluded because it is hidden.
const WarningHiddenItem = "hiddengradeitem"

// MapHTTPStatus maps grade errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	return listquery.MapHTTPStatus(err)
}
