package settings

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/aspiredu/internal/access"
	"github.com/JaimeStill/aspiredu/pkg/handlers"
	"github.com/JaimeStill/aspiredu/pkg/routes"
)

// Handler provides HTTP endpoints for plugin settings.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "settings"),
	}
}

// Routes returns the route group definition for settings endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/settings",
		Routes: []routes.Route{
			routes.Get("/links", h.Links),
			routes.Get("/plugin", h.Plugin),
		},
	}
}

// Links reports the product link visibility for the calling user.
func (h *Handler) Links(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	target, err := ParseTarget(q.Get("contextlevel"), q.Get("instanceid"), q.Get("sitehome"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	links, err := h.sys.Links(r.Context(), access.FromContext(r.Context()), target)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, h.logger, http.StatusOK, links)
}

// Plugin returns the release information.
func (h *Handler) Plugin(w http.ResponseWriter, r *http.Request) {
	info, err := h.sys.PluginInfo(r.Context(), access.FromContext(r.Context()))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, h.logger, http.StatusOK, info)
}
