package settings_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/aspiredu/internal/access"
	"github.com/JaimeStill/aspiredu/internal/lms"
	"github.com/JaimeStill/aspiredu/internal/settings"
	"github.com/JaimeStill/aspiredu/pkg/listquery"
	"github.com/JaimeStill/aspiredu/pkg/pagination"
	"github.com/JaimeStill/aspiredu/pkg/routes"
)

type mockSystem struct {
	target settings.Target
	links  *settings.Links
	err    error
}

func (m *mockSystem) Handler() *settings.Handler { return settings.NewHandler(m, discard()) }

func (m *mockSystem) Pagination(context.Context) pagination.Config { return base }

func (m *mockSystem) Load(context.Context) (settings.Settings, error) {
	return settings.Defaults(), nil
}

func (m *mockSystem) Links(_ context.Context, _ *access.Requester, t settings.Target) (*settings.Links, error) {
	m.target = t
	return m.links, m.err
}

func (m *mockSystem) PluginInfo(context.Context, *access.Requester) (*settings.PluginInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &settings.PluginInfo{Release: "4.5.0", Warnings: []listquery.Warning{}}, nil
}

func serve(sys settings.System, target string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler().Routes())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandlerLinks(t *testing.T) {
	sys := &mockSystem{links: &settings.Links{Scope: settings.CourseScope, DropoutDetective: true}}

	rec := serve(sys, "/settings/links?contextlevel=50&instanceid=7&sitehome=false")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	want := settings.Target{Level: lms.LevelCourse, InstanceID: 7}
	if sys.target != want {
		t.Errorf("target = %+v, want %+v", sys.target, want)
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["scope"] != "course" || body["dropoutdetective"] != true {
		t.Errorf("body = %v", body)
	}
}

func TestHandlerLinksErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{"bad level", "/settings/links?contextlevel=course", nil, http.StatusBadRequest},
		{"bad sitehome", "/settings/links?sitehome=maybe", nil, http.StatusBadRequest},
		{"unknown level", "/settings/links?contextlevel=55", settings.ErrContextLevel, http.StatusBadRequest},
		{"missing context", "/settings/links?contextlevel=50&instanceid=9", listquery.NotFound("context", 9), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&mockSystem{err: tt.err}, tt.target)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestHandlerPlugin(t *testing.T) {
	rec := serve(&mockSystem{}, "/settings/plugin")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = serve(&mockSystem{err: listquery.Forbidden(lms.CapSiteConfigView)}, "/settings/plugin")
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}
