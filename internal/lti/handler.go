package lti

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/aspiredu/internal/access"
	"github.com/JaimeStill/aspiredu/pkg/handlers"
	"github.com/JaimeStill/aspiredu/pkg/listquery"
	"github.com/JaimeStill/aspiredu/pkg/middleware"
	"github.com/JaimeStill/aspiredu/pkg/routes"
	"github.com/JaimeStill/aspiredu/pkg/web"
)

// Handler provides the HTTP endpoints of the LTI platform.
type Handler struct {
	sys    System
	logger *slog.Logger
	pages  *web.TemplateSet
}

// NewHandler creates a Handler rendering form posts with pages.
func NewHandler(sys System, logger *slog.Logger, pages *web.TemplateSet) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "lti"),
		pages:  pages,
	}
}

// Routes returns the LTI routes. The auth and certs endpoints are called by
// the tool and stay public; launch runs behind authenticate.
func (h *Handler) Routes(authenticate ...middleware.Func) routes.Group {
	return routes.Group{
		Routes: []routes.Route{
			routes.Get("/auth", h.Auth),
			routes.Post("/auth", h.Auth),
			routes.Get("/certs", h.Certs),
		},
		Children: []routes.Group{
			{
				Middleware: authenticate,
				Routes: []routes.Route{
					routes.Get("/launch", h.Launch),
				},
			},
		},
	}
}

// Launch redirects the user to the tool's login initiation endpoint.
func (h *Handler) Launch(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	courseID, err := listquery.Int64(values, "id", 0)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	if courseID == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, listquery.Invalid("id", ""))
		return
	}

	req := LaunchRequest{CourseID: courseID, Product: values.Get("product")}
	target, err := h.sys.Launch(r.Context(), access.FromContext(r.Context()), req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	http.Redirect(w, r, target.String(), http.StatusFound)
}

// Auth answers an OIDC authentication request with an auto-submitting form
// posting the id_token to the tool.
func (h *Handler) Auth(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	req := AuthRequest{
		Scope:        r.Form.Get("scope"),
		ResponseType: r.Form.Get("response_type"),
		ResponseMode: r.Form.Get("response_mode"),
		Prompt:       r.Form.Get("prompt"),
		ClientID:     r.Form.Get("client_id"),
		RedirectURI:  r.Form.Get("redirect_uri"),
		LoginHint:    r.Form.Get("login_hint"),
		MessageHint:  r.Form.Get("lti_message_hint"),
		Nonce:        r.Form.Get("nonce"),
		State:        r.Form.Get("state"),
	}

	post, err := h.sys.Authorize(r.Context(), req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	if err := h.pages.Render(w, http.StatusOK, formPostView, post); err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
	}
}

// Certs returns the platform JWKS.
func (h *Handler) Certs(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, h.logger, http.StatusOK, h.sys.JWKS())
}
