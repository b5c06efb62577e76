package api

import (
	"github.com/JaimeStill/aspiredu/internal/config"
	"github.com/JaimeStill/aspiredu/internal/infrastructure"
)

// Runtime extends Infrastructure with the configuration domain systems read.
type Runtime struct {
	*infrastructure.Infrastructure
	Config *config.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Verifier:  infra.Verifier,
		},
		Config: cfg,
	}
}
