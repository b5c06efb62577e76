package logs

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/JaimeStill/aspiredu/internal/access"
	"github.com/JaimeStill/aspiredu/pkg/handlers"
	"github.com/JaimeStill/aspiredu/pkg/listquery"
	"github.com/JaimeStill/aspiredu/pkg/pagination"
	"github.com/JaimeStill/aspiredu/pkg/routes"
)

// Handler provides HTTP endpoints for log queries.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Source
}

// NewHandler creates a Handler with the given system, logger, and pagination source.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Source) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "logs"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for log endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/logs",
		Routes: []routes.Route{
			routes.Get("", h.Records),
		},
	}
}

// Records returns a page of log records, newest first unless order=ASC.
func (h *Handler) Records(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	order := values.Get("order")
	if order == "" {
		order = values.Get("sort")
	}
	if order == "" {
		order = string(listquery.Descending)
	}
	values.Set("sort", order)

	q, err := listquery.QueryFromValues(values, h.pagination.Pagination(r.Context()))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	opts, err := optionsFromValues(values)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	result, err := h.sys.Records(r.Context(), access.FromContext(r.Context()), opts, q)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, h.logger, http.StatusOK, result)
}

func optionsFromValues(values url.Values) (Options, error) {
	opts := DefaultOptions()
	opts.ModAction = values.Get("modaction")

	var err error
	if opts.CourseID, err = listquery.Int64(values, "courseid", 0); err != nil {
		return Options{}, err
	}
	if opts.UserID, err = listquery.Int64(values, "userid", 0); err != nil {
		return Options{}, err
	}
	if opts.GroupID, err = listquery.Int64(values, "groupid", 0); err != nil {
		return Options{}, err
	}
	if opts.ModuleID, err = listquery.Int64(values, "modid", 0); err != nil {
		return Options{}, err
	}
	if opts.Date, err = listquery.Int64(values, "date", 0); err != nil {
		return Options{}, err
	}

	level, err := listquery.Int64(values, "edulevel", AllEduLevels)
	if err != nil {
		return Options{}, err
	}
	opts.EduLevel = int(level)

	return opts, nil
}
