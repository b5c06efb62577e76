package forums

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

// Handler provides HTTP endpoints for forum queries.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Source
}

// NewHandler creates a Handler with the given system, logger, and pagination source.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Source) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "forums"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for forum endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/forums",
		Routes: []routes.Route{
			routes.Get("", h.Forums),
			routes.Get("/discussions/{id}/posts", h.Posts),
		},
	}
}

// Posts returns a page of a discussion's posts.
func (h *Handler) Posts(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, listquery.Invalid("discussionid", r.PathValue("id")))
		return
	}

	values := r.URL.Query()
	q, err := listquery.QueryFromValues(values, h.pagination.Pagination(r.Context()))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	var opts PostOptions
	if opts.Dates, err = listquery.DateRangeFromValues(values); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	if opts.IncludeContent, err = listquery.Bool(values, "include_content", false); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	result, err := h.sys.Posts(r.Context(), access.FromContext(r.Context()), id, opts, q)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, h.logger, http.StatusOK, result)
}

// Forums returns a page of the forums in the requested courses.
func (h *Handler) Forums(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	q, err := listquery.QueryFromValues(values, h.pagination.Pagination(r.Context()))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	var opts ForumOptions
	if opts.CourseIDs, err = listquery.IDs(values, "courseids"); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	if opts.Dates, err = listquery.DateRangeFromValues(values); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	result, err := h.sys.Forums(r.Context(), access.FromContext(r.Context()), opts, q)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, h.logger, http.StatusOK, result)
}
