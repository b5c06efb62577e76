package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
)

const (
	EnvAuthIssuer    = "ASPIREDU_AUTH_ISSUER"
	EnvAuthClientID  = "ASPIREDU_AUTH_CLIENT_ID"
	EnvAuthUserClaim = "ASPIREDU_AUTH_USER_CLAIM"
	EnvAuthUserField = "ASPIREDU_AUTH_USER_FIELD"
)

// UserFields lists the LMS user columns a token claim may be matched against.
var UserFields = []string{"id", "username", "idnumber", "email"}

// AuthConfig holds the OpenID Connect provider trusted to authenticate API callers.
type AuthConfig struct {
	Issuer   string `toml:"issuer"`
	ClientID string `toml:"client_id"`
	// UserClaim names the ID token claim identifying the LMS user.
	UserClaim string `toml:"user_claim"`
	// UserField is the LMS user column UserClaim is matched against.
	UserField string `toml:"user_field"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *AuthConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.ClientID != "" {
		c.ClientID = overlay.ClientID
	}
	if overlay.UserClaim != "" {
		c.UserClaim = overlay.UserClaim
	}
	if overlay.UserField != "" {
		c.UserField = overlay.UserField
	}
}

func (c *AuthConfig) loadDefaults() {
	if c.UserClaim == "" {
		c.UserClaim = "sub"
	}
	if c.UserField == "" {
		c.UserField = "username"
	}
}

func (c *AuthConfig) loadEnv() {
	if v := os.Getenv(EnvAuthIssuer); v != "" {
		c.Issuer = v
	}
	if v := os.Getenv(EnvAuthClientID); v != "" {
		c.ClientID = v
	}
	if v := os.Getenv(EnvAuthUserClaim); v != "" {
		c.UserClaim = v
	}
	if v := os.Getenv(EnvAuthUserField); v != "" {
		c.UserField = v
	}
}

func (c *AuthConfig) validate() error {
	if c.Issuer == "" {
		return fmt.Errorf("issuer required")
	}
	if u, err := url.Parse(c.Issuer); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid issuer: %s", c.Issuer)
	}
	if c.ClientID == "" {
		return fmt.Errorf("client_id required")
	}
	if !slices.Contains(UserFields, c.UserField) {
		return fmt.Errorf("invalid user_field %q, allowed values are: %v", c.UserField, UserFields)
	}
	return nil
}
