package main

import (
	"encoding/json"
	"net/http"

	"github.com/JaimeStill/aspiredu/internal/infrastructure"
	"github.com/JaimeStill/aspiredu/pkg/module"
)

func respondStatus(w http.ResponseWriter, status int, value string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"status": value})
}

// buildRouter serves the probes outside every module so they bypass
// authentication.
func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondStatus(w, http.StatusOK, "ok")
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, _ *http.Request) {
		if !infra.Lifecycle.Ready() {
			respondStatus(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		respondStatus(w, http.StatusOK, "ready")
	})

	return router
}
