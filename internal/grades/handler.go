package grades

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

// Handler provides HTTP endpoints for grade queries.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Source
}

// NewHandler creates a Handler with the given system, logger, and pagination source.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Source) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "grades"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for grade endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/courses",
		Routes: []routes.Route{
			routes.Get("/{id}/grades", h.Grades),
		},
	}
}

// Grades returns a page of a course's grade items.
func (h *Handler) Grades(w http.ResponseWriter, r *http.Request) {
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

	var opts Options
	if opts.UserIDs, err = listquery.IDs(values, "userids"); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	if opts.Dates, err = listquery.DateRangeFromValues(values); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	result, err := h.sys.Grades(r.Context(), access.FromContext(r.Context()), id, opts, q)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, h.logger, http.StatusOK, result)
}
