package logs

import "github.com/JaimeStill/aspiredu/pkg/listquery"

// MapHTTPStatus maps log errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	return listquery.MapHTTPStatus(err)
}
