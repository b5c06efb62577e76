package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/aspiredu/internal/config"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "2024052800"

[server]
host = "0.0.0.0"
port = 8080
read_timeout = "1m"
write_timeout = "1m"
shutdown_timeout = "30s"

[database]
host = "localhost"
port = 5432
name = "moodle"
user = "moodle"
password = "moodle"

[api]
base_path = "/api"

[api.cors]
enabled = false

[api.pagination]
default_page_size = 25
max_page_size = 50

[auth]
issuer = "https://idp.example.com"
client_id = "bridge"

[lti]
issuer = "https://lms.example.com"
client_id = "tool"
login_url = "https://tool.example.com/login"
redirect_uris = ["https://tool.example.com/launch"]
`

const overlayConfig = `
[server]
port = 9090

[database]
host = "prodhost"

[lti]
deployment_id = "7"
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func loadBase(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return cfg
}

func TestLoad(t *testing.T) {
	cfg := loadBase(t)

	if cfg.Server.Port != 8080 {
		t.Errorf("server port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.PublicURL != "http://localhost:8080" {
		t.Errorf("public url: got %s, want default", cfg.Server.PublicURL)
	}
	if cfg.Database.Name != "moodle" {
		t.Errorf("db name: got %s, want moodle", cfg.Database.Name)
	}
	if cfg.API.SiteCourseID != 1 {
		t.Errorf("site course id: got %d, want 1", cfg.API.SiteCourseID)
	}
	if cfg.API.Pagination.DefaultPageSize != 25 || cfg.API.Pagination.MaxPageSize != 50 {
		t.Errorf("pagination: got %+v, want 25/50", cfg.API.Pagination)
	}
	if cfg.Auth.UserClaim != "sub" || cfg.Auth.UserField != "username" {
		t.Errorf("auth defaults: got %s/%s", cfg.Auth.UserClaim, cfg.Auth.UserField)
	}
	if cfg.LTI.Version != config.LTIVersion || cfg.LTI.DeploymentID != "1" {
		t.Errorf("lti defaults: got version %s deployment %s", cfg.LTI.Version, cfg.LTI.DeploymentID)
	}
	if cfg.LTI.TokenTTLDuration() != 5*time.Minute {
		t.Errorf("token ttl: got %v, want 5m", cfg.LTI.TokenTTLDuration())
	}
	if cfg.Version != "2024052800" {
		t.Errorf("version: got %s", cfg.Version)
	}
}

func TestLoadWithOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	chdir(t, dir)

	t.Setenv(config.EnvAspireduEnv, "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port: got %d, want 9090 (from overlay)", cfg.Server.Port)
	}
	if cfg.Database.Host != "prodhost" {
		t.Errorf("db host: got %s, want prodhost (from overlay)", cfg.Database.Host)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("db port: got %d, want 5432 (from base)", cfg.Database.Port)
	}
	if cfg.LTI.DeploymentID != "7" {
		t.Errorf("lti deployment: got %s, want 7 (from overlay)", cfg.LTI.DeploymentID)
	}
	if cfg.Env() != "staging" {
		t.Errorf("env: got %s, want staging", cfg.Env())
	}
}

func TestLoadEnvVarOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	t.Setenv(config.EnvAspireduVersion, "2025010100")
	t.Setenv(config.EnvServerPort, "3000")
	t.Setenv(config.EnvLTIRedirectURIs, "https://a.example/launch, https://b.example/launch")
	t.Setenv("ASPIREDU_PAGINATION_DEFAULT_PAGE_SIZE", "10")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Version != "2025010100" {
		t.Errorf("version: got %s, want 2025010100", cfg.Version)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("server port: got %d, want 3000", cfg.Server.Port)
	}
	if len(cfg.LTI.RedirectURIs) != 2 || cfg.LTI.RedirectURIs[1] != "https://b.example/launch" {
		t.Errorf("redirect uris: got %v", cfg.LTI.RedirectURIs)
	}
	if cfg.API.Pagination.DefaultPageSize != 10 {
		t.Errorf("page size: got %d, want 10", cfg.API.Pagination.DefaultPageSize)
	}
}

func TestLoadNoConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	t.Setenv("ASPIREDU_DB_NAME", "testdb")
	t.Setenv("ASPIREDU_DB_USER", "testuser")
	t.Setenv(config.EnvAuthIssuer, "https://idp.example.com")
	t.Setenv(config.EnvAuthClientID, "bridge")
	t.Setenv(config.EnvLTIIssuer, "https://lms.example.com")
	t.Setenv(config.EnvLTIClientID, "tool")
	t.Setenv(config.EnvLTILoginURL, "https://tool.example.com/login")
	t.Setenv(config.EnvLTIRedirectURIs, "https://tool.example.com/launch")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load without config.toml failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port default: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "testdb" {
		t.Errorf("db name from env: got %s, want testdb", cfg.Database.Name)
	}
	if cfg.API.Pagination.DefaultPageSize != 100 || cfg.API.Pagination.MaxPageSize != 1000 {
		t.Errorf("pagination defaults: got %+v, want 100/1000", cfg.API.Pagination)
	}
}

func TestLTIIssuerDefaultsToPublicURL(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	t.Setenv("ASPIREDU_DB_NAME", "testdb")
	t.Setenv("ASPIREDU_DB_USER", "testuser")
	t.Setenv(config.EnvAuthIssuer, "https://idp.example.com")
	t.Setenv(config.EnvAuthClientID, "bridge")
	t.Setenv(config.EnvServerPublicURL, "https://lms.example.com/")
	t.Setenv(config.EnvLTIClientID, "tool")
	t.Setenv(config.EnvLTILoginURL, "https://tool.example.com/login")
	t.Setenv(config.EnvLTIRedirectURIs, "https://tool.example.com/launch")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.LTI.Issuer != "https://lms.example.com" {
		t.Errorf("lti issuer: got %s, want public url", cfg.LTI.Issuer)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", `server = {`)
	chdir(t, dir)

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"lti 1.1 rejected", map[string]string{config.EnvLTIVersion: "1.1"}, "only 1.3.0 is supported"},
		{"bad login url", map[string]string{config.EnvLTILoginURL: "not a url"}, "invalid login_url"},
		{"bad token ttl", map[string]string{config.EnvLTITokenTTL: "-1m"}, "invalid token_ttl"},
		{"bad user field", map[string]string{config.EnvAuthUserField: "password"}, "invalid user_field"},
		{"bad issuer", map[string]string{config.EnvAuthIssuer: "idp"}, "invalid issuer"},
		{"bad site course", map[string]string{config.EnvAPISiteCourseID: "-4"}, "invalid site_course_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, "config.toml", baseConfig)
			chdir(t, dir)

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestShutdownTimeoutDuration(t *testing.T) {
	cfg := loadBase(t)

	if d := cfg.ShutdownTimeoutDuration(); d != 30*time.Second {
		t.Errorf("shutdown timeout: got %v, want 30s", d)
	}
	if addr := cfg.Server.Addr(); addr != "0.0.0.0:8080" {
		t.Errorf("addr: got %s, want 0.0.0.0:8080", addr)
	}
}
