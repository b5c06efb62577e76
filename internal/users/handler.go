package users

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/aspiredu/internal/access"
	"github.com/JaimeStill/aspiredu/pkg/handlers"
	"github.com/JaimeStill/aspiredu/pkg/listquery"
	"github.com/JaimeStill/aspiredu/pkg/pagination"
	"github.com/JaimeStill/aspiredu/pkg/routes"
)

// Handler provides HTTP endpoints for user queries.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Source
}

// NewHandler creates a Handler with the given system, logger, and pagination source.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Source) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "users"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for user endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Routes: []routes.Route{
			routes.Get("/users", h.ByRoles),
			routes.Get("/users/admins", h.SiteAdmins),
			routes.Get("/roles/{shortname}/users", h.RoleUsers),
		},
	}
}

// ByRoles returns a page of users holding any of the roleids.
func (h *Handler) ByRoles(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	q, err := listquery.QueryFromValues(values, h.pagination.Pagination(r.Context()))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	roleIDs, err := listquery.IDs(values, "roleids")
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	result, err := h.sys.ByRoles(r.Context(), access.FromContext(r.Context()), roleIDs, q)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, h.logger, http.StatusOK, result)
}

// SiteAdmins returns the site administrators.
func (h *Handler) SiteAdmins(w http.ResponseWriter, r *http.Request) {
	result, err := h.sys.SiteAdmins(r.Context(), access.FromContext(r.Context()))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, h.logger, http.StatusOK, result)
}

// RoleUsers returns the holders of a role in the context given by
// contextlevel and instanceid.
func (h *Handler) RoleUsers(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	level, err := listquery.Int64(values, "contextlevel", 0)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	if level == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, listquery.Invalid("contextlevel", ""))
		return
	}

	instance, err := listquery.Int64(values, "instanceid", 0)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	target := RoleTarget{
		ShortName:  r.PathValue("shortname"),
		Level:      int(level),
		InstanceID: instance,
	}

	result, err := h.sys.RoleUsers(r.Context(), access.FromContext(r.Context()), target)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, h.logger, http.StatusOK, result)
}
