package access

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/JaimeStill/aspiredu/internal/config"
	"github.com/JaimeStill/aspiredu/pkg/handlers"
	"github.com/JaimeStill/aspiredu/pkg/middleware"
)

// Verifier checks a raw ID token. *oidc.IDTokenVerifier satisfies it.
type Verifier interface {
	Verify(ctx context.Context, rawIDToken string) (*oidc.IDToken, error)
}

// NewVerifier discovers the OpenID provider at cfg.Issuer and returns a
// verifier accepting tokens issued to cfg.ClientID.
func NewVerifier(ctx context.Context, cfg *config.AuthConfig) (*oidc.IDTokenVerifier, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", cfg.Issuer, err)
	}
	return provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}), nil
}

// Authenticate verifies the bearer token of each request and stores the
// resolved Requester in the request context.
func Authenticate(v Verifier, sys System, cfg *config.AuthConfig, logger *slog.Logger) middleware.Func {
	logger = logger.With("middleware", "authenticate")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearer(r)
			if !ok {
				unauthorized(w, logger, ErrUnauthenticated)
				return
			}

			token, err := v.Verify(r.Context(), raw)
			if err != nil {
				unauthorized(w, logger, fmt.Errorf("%w: %v", ErrUnauthenticated, err))
				return
			}

			value, err := claim(token, cfg.UserClaim)
			if err != nil {
				unauthorized(w, logger, err)
				return
			}

			req, err := sys.Resolve(r.Context(), cfg.UserField, value)
			if err != nil {
				status := MapHTTPStatus(err)
				if status == http.StatusUnauthorized {
					unauthorized(w, logger, err)
					return
				}
				handlers.RespondError(w, logger, status, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithRequester(r.Context(), req)))
		})
	}
}

func bearer(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func claim(token *oidc.IDToken, name string) (string, error) {
	if name == "sub" {
		return token.Subject, nil
	}

	var claims map[string]any
	if err := token.Claims(&claims); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	switch v := claims[name].(type) {
	case string:
		if v != "" {
			return v, nil
		}
	case float64:
		return fmt.Sprintf("%.0f", v), nil
	}
	return "", fmt.Errorf("%w: missing claim %s", ErrUnauthenticated, name)
}

func unauthorized(w http.ResponseWriter, logger *slog.Logger, err error) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="aspiredu"`)
	handlers.RespondError(w, logger, http.StatusUnauthorized, err)
}
