package assignments

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

// Handler provides HTTP endpoints for assignment queries.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Source
}

// NewHandler creates a Handler with the given system, logger, and pagination source.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Source) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "assignments"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for assignment endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Routes: []routes.Route{
			routes.Get("/courses/{id}/assignments", h.Assignments),
			routes.Get("/assignments/{id}/submissions", h.Submissions),
		},
	}
}

// Assignments returns a page of a course's assignments.
func (h *Handler) Assignments(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.sys.Assignments(r.Context(), access.FromContext(r.Context()), id, dates, q)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, h.logger, http.StatusOK, result)
}

// Submissions returns a page of an assignment's latest submissions.
func (h *Handler) Submissions(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, listquery.Invalid("assignmentid", r.PathValue("id")))
		return
	}

	values := r.URL.Query()
	q, err := listquery.QueryFromValues(values, h.pagination.Pagination(r.Context()))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	opts := SubmissionOptions{Status: values.Get("status")}
	if opts.Dates, err = listquery.DateRangeFromValues(values); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	result, err := h.sys.Submissions(r.Context(), access.FromContext(r.Context()), id, opts, q)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, h.logger, http.StatusOK, result)
}
