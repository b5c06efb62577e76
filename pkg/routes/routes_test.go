package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/aspiredu/pkg/middleware"
	"github.com/JaimeStill/aspiredu/pkg/routes"
)

func header(key, value string) middleware.Func {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add(key, value)
			next.ServeHTTP(w, r)
		})
	}
}

func TestRegisterNestedGroups(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix:     "/courses",
		Middleware: []middleware.Func{header("X-Trace", "parent")},
		Routes: []routes.Route{
			routes.Get("", func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("list"))
			}),
		},
		Children: []routes.Group{
			{
				Prefix:     "/{id}",
				Middleware: []middleware.Func{header("X-Trace", "child")},
				Routes: []routes.Route{
					routes.Get("/grades", func(w http.ResponseWriter, r *http.Request) {
						w.Write([]byte("grades " + r.PathValue("id")))
					}),
				},
			},
		},
	})

	tests := []struct {
		name      string
		method    string
		path      string
		wantCode  int
		wantBody  string
		wantTrace []string
	}{
		{"group route", http.MethodGet, "/courses", http.StatusOK, "list", []string{"parent"}},
		{"child route", http.MethodGet, "/courses/4/grades", http.StatusOK, "grades 4", []string{"parent", "child"}},
		{"wrong method", http.MethodPost, "/courses", http.StatusMethodNotAllowed, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
			got := rec.Header().Values("X-Trace")
			if len(got) != len(tt.wantTrace) {
				t.Fatalf("X-Trace = %v, want %v", got, tt.wantTrace)
			}
			for i := range got {
				if got[i] != tt.wantTrace[i] {
					t.Errorf("X-Trace[%d] = %q, want %q", i, got[i], tt.wantTrace[i])
				}
			}
		})
	}
}
