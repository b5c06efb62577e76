package courses

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/aspiredu/internal/access"
	"github.com/JaimeStill/aspiredu/pkg/handlers"
	"github.com/JaimeStill/aspiredu/pkg/listquery"
	"github.com/JaimeStill/aspiredu/pkg/pagination"
	"github.com/JaimeStill/aspiredu/pkg/routes"
)

// Handler provides HTTP endpoints for course queries.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Source
}

// NewHandler creates a Handler with the given system, logger, and pagination source.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Source) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "courses"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for course endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Routes: []routes.Route{
			routes.Get("/courses", h.Courses),
			routes.Get("/courses/{id}/contents", h.Contents),
			routes.Get("/modules/{module}/instances/{instance}", h.ModuleFromInstance),
		},
	}
}

// Courses returns a page of courses, optionally limited to ids.
func (h *Handler) Courses(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	q, err := listquery.QueryFromValues(values, h.pagination.Pagination(r.Context()))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	ids, err := listquery.IDs(values, "ids")
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	result, err := h.sys.Courses(r.Context(), access.FromContext(r.Context()), CourseOptions{IDs: ids}, q)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, h.logger, http.StatusOK, result)
}

// Contents returns a page of a course's modules across all sections.
func (h *Handler) Contents(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, listquery.Invalid("courseid", r.PathValue("id")))
		return
	}

	values := r.URL.Query()
	q, err := listquery.QueryFromValues(values, h.pagination.Pagination(r.Context()))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	dates, err := listquery.DateRangeFromValues(values)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	result, err := h.sys.Contents(r.Context(), access.FromContext(r.Context()), id, dates, q)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, h.logger, http.StatusOK, result)
}

// ModuleFromInstance returns the course module of an activity instance.
func (h *Handler) ModuleFromInstance(w http.ResponseWriter, r *http.Request) {
	instance, err := strconv.ParseInt(r.PathValue("instance"), 10, 64)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, listquery.Invalid("instance", r.PathValue("instance")))
		return
	}

	result, err := h.sys.ModuleFromInstance(r.Context(), access.FromContext(r.Context()), r.PathValue("module"), instance)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, h.logger, http.StatusOK, result)
}
