// Package middleware provides composable HTTP middleware and an ordered stack to apply it.
package middleware

import (
	"net/http"
	"slices"
)

// Func wraps an http.Handler.
type Func = func(http.Handler) http.Handler

// System manages an ordered stack of HTTP middleware.
type System interface {
	Use(mw ...Func)
	Apply(handler http.Handler) http.Handler
}

type stack []Func

// New creates a System with an optional initial stack.
// The first middleware given is the outermost.
func New(mw ...Func) System {
	s := stack(slices.Clone(mw))
	return &s
}

func (s *stack) Use(mw ...Func) {
	*s = append(*s, mw...)
}

func (s *stack) Apply(handler http.Handler) http.Handler {
	return Chain(handler, *s...)
}

// Chain wraps handler so the first middleware runs first.
func Chain(handler http.Handler, mw ...Func) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}
	return handler
}
