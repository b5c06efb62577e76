// Package routes declares HTTP routes in nested prefix groups.
package routes

import (
	"net/http"

	"github.com/JaimeStill/aspiredu/pkg/middleware"
)

// Group organizes routes under a common prefix. Middleware wraps every route
// in the group and its children; a parent's middleware runs first.
type Group struct {
	Prefix     string
	Middleware []middleware.Func
	Routes     []Route
	Children   []Group
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", nil, group)
	}
}

func registerGroup(mux *http.ServeMux, parentPrefix string, parentMw []middleware.Func, group Group) {
	fullPrefix := parentPrefix + group.Prefix
	mw := append(append([]middleware.Func{}, parentMw...), group.Middleware...)

	for _, route := range group.Routes {
		pattern := route.Method + " " + fullPrefix + route.Pattern
		mux.Handle(pattern, middleware.Chain(route.Handler, mw...))
	}
	for _, child := range group.Children {
		registerGroup(mux, fullPrefix, mw, child)
	}
}
