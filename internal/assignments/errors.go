package assignments

import "github.com/JaimeStill/aspiredu/pkg/listquery"

// MapHTTPStatus maps assignment errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	return listquery.MapHTTPStatus(err)
}
