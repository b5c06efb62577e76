// Package module mounts self-contained route trees under single-level path
// prefixes, each with its own middleware stack.
package module

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/JaimeStill/aspiredu/pkg/middleware"
	"github.com/JaimeStill/aspiredu/pkg/routes"
)

// Module is an HTTP handler that strips its prefix and delegates to an inner mux
// with its own middleware stack.
type Module struct {
	prefix     string
	mux        *http.ServeMux
	middleware middleware.System
}

// New creates a Module with the given single-level prefix (e.g. "/api")
// serving the given route groups.
// Panics if the prefix is empty, missing a leading slash, or multi-level.
func New(prefix string, groups ...routes.Group) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	m := &Module{
		prefix:     prefix,
		mux:        http.NewServeMux(),
		middleware: middleware.New(),
	}
	routes.Register(m.mux, groups...)
	return m
}

// Prefix returns the module's path prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use adds middleware to the module's stack.
func (m *Module) Use(mw ...middleware.Func) {
	m.middleware.Use(mw...)
}

// ServeHTTP strips the module prefix from the request path and dispatches to the inner mux.
func (m *Module) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	inner := stripPrefix(req, m.prefix)
	m.middleware.Apply(m.mux).ServeHTTP(w, inner)
}

func stripPrefix(req *http.Request, prefix string) *http.Request {
	path := strings.TrimPrefix(req.URL.Path, prefix)
	if path == "" {
		path = "/"
	}

	r := req.Clone(req.Context())
	r.URL = new(url.URL)
	*r.URL = *req.URL
	r.URL.Path = path
	r.URL.RawPath = ""
	return r
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("module prefix cannot be empty")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	}
	if strings.Count(prefix, "/") != 1 {
		return fmt.Errorf("module prefix must be single-level sub-path: %s", prefix)
	}
	return nil
}
