// Package api assembles the HTTP modules with all domain systems and route registration.
package api

import (
	"github.com/JaimeStill/aspiredu/internal/access"
	"github.com/JaimeStill/aspiredu/internal/config"
	"github.com/JaimeStill/aspiredu/internal/infrastructure"
	"github.com/JaimeStill/aspiredu/pkg/middleware"
	"github.com/JaimeStill/aspiredu/pkg/module"
)

// LTIPrefix is where the LTI platform endpoints are mounted.
const LTIPrefix = "/lti"

// Modules are the HTTP modules served from one domain.
type Modules struct {
	API *module.Module
	LTI *module.Module
}

// NewModules creates the API module and the LTI module. Both share the
// bearer token authentication; the LTI module applies it to launches only.
func NewModules(cfg *config.Config, infra *infrastructure.Infrastructure) (*Modules, error) {
	runtime := NewRuntime(cfg, infra)
	domain, err := NewDomain(runtime)
	if err != nil {
		return nil, err
	}

	authenticate := access.Authenticate(runtime.Verifier, domain.Access, &cfg.Auth, runtime.Logger)

	api := module.New(cfg.API.BasePath, apiRoutes(domain)...)
	api.Use(middleware.Recover(runtime.Logger))
	api.Use(middleware.Logger(runtime.Logger))
	api.Use(middleware.CORS(&cfg.API.CORS))
	api.Use(authenticate)

	ltiLogger := infra.Logger.With("module", "lti")
	lti := module.New(LTIPrefix, domain.LTI.Handler().Routes(authenticate))
	lti.Use(middleware.Recover(ltiLogger))
	lti.Use(middleware.Logger(ltiLogger))

	return &Modules{API: api, LTI: lti}, nil
}
