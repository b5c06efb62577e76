// Package web renders HTML pages from Go templates parsed once at startup.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

// TemplateSet holds one pre-parsed template per view. Every view is parsed
// on top of a clone of the shared layouts and rendered through the layout
// template.
type TemplateSet struct {
	views  map[string]*template.Template
	layout string
}

// NewTemplateSet parses the layouts matching layoutGlob in fsys, then each
// view file on a clone of them. Parsing fails fast on any template error.
func NewTemplateSet(fsys fs.FS, layoutGlob, layout string, views ...string) (*TemplateSet, error) {
	layouts, err := template.ParseFS(fsys, layoutGlob)
	if err != nil {
		return nil, err
	}

	parsed := make(map[string]*template.Template, len(views))
	for _, view := range views {
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", view, err)
		}
		if _, err := t.ParseFS(fsys, view); err != nil {
			return nil, fmt.Errorf("parse template: %s: %w", view, err)
		}
		parsed[view] = t
	}

	return &TemplateSet{
		views:  parsed,
		layout: layout,
	}, nil
}

// Render executes view with data and writes it with status. Nothing is
// written when execution fails, so the caller can still send an error.
func (ts *TemplateSet) Render(w http.ResponseWriter, status int, view string, data any) error {
	t, ok := ts.views[view]
	if !ok {
		return fmt.Errorf("template not found: %s", view)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, ts.layout, data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
