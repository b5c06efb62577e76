// Package config loads the service configuration from TOML files and
// ASPIREDU_* environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/aspiredu/pkg/database"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvAspireduEnv             = "ASPIREDU_ENV"
	EnvAspireduShutdownTimeout = "ASPIREDU_SHUTDOWN_TIMEOUT"
	EnvAspireduVersion         = "ASPIREDU_VERSION"
)

var databaseEnv = &database.Env{
	Host:             "ASPIREDU_DB_HOST",
	Port:             "ASPIREDU_DB_PORT",
	Name:             "ASPIREDU_DB_NAME",
	User:             "ASPIREDU_DB_USER",
	Password:         "ASPIREDU_DB_PASSWORD",
	SSLMode:          "ASPIREDU_DB_SSL_MODE",
	MaxOpenConns:     "ASPIREDU_DB_MAX_OPEN_CONNS",
	MaxIdleConns:     "ASPIREDU_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime:  "ASPIREDU_DB_CONN_MAX_LIFETIME",
	ConnTimeout:      "ASPIREDU_DB_CONN_TIMEOUT",
	StatementTimeout: "ASPIREDU_DB_STATEMENT_TIMEOUT",
	ApplicationName:  "ASPIREDU_DB_APPLICATION_NAME",
}

// Config is the root configuration for the aspiredu service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	API             APIConfig       `toml:"api"`
	Auth            AuthConfig      `toml:"auth"`
	LTI             LTIConfig       `toml:"lti"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	// Version is reported as the plugin release.
	Version string `toml:"version"`
}

// Env returns the ASPIREDU_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvAspireduEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.API.Merge(&overlay.API)
	c.Auth.Merge(&overlay.Auth)
	c.LTI.Merge(&overlay.LTI)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Auth.Finalize(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if c.LTI.Issuer == "" {
		c.LTI.Issuer = c.Server.PublicURL
	}
	if err := c.LTI.Finalize(); err != nil {
		return fmt.Errorf("lti: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvAspireduShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvAspireduVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvAspireduEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
