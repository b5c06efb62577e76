package main

import (
	"time"

	"github.com/JaimeStill/aspiredu/internal/api"
	"github.com/JaimeStill/aspiredu/internal/config"
	"github.com/JaimeStill/aspiredu/internal/infrastructure"
)

// Server owns the infrastructure and the HTTP listener serving the API and
// LTI modules.
type Server struct {
	infra *infrastructure.Infrastructure
	http  *httpServer
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := api.NewModules(cfg, infra)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	router.Mount(modules.API, modules.LTI)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"release", cfg.Version,
		"env", cfg.Env(),
		"api", cfg.API.BasePath,
		"lti", api.LTIPrefix,
	)

	return &Server{
		infra: infra,
		http:  newHTTPServer(&cfg.Server, router, infra.Logger),
	}, nil
}

func (s *Server) Start() error {
	if err := s.infra.Start(); err != nil {
		return err
	}
	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		if s.infra.Lifecycle.Ready() {
			s.infra.Logger.Info("all subsystems ready")
		} else {
			s.infra.Logger.Warn("started without a database connection; /readyz reports not ready")
		}
	}()

	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
