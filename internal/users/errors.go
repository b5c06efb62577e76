package users

import "github.com/JaimeStill/aspiredu/pkg/listquery"

// MapHTTPStatus maps user errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	return listquery.MapHTTPStatus(err)
}
