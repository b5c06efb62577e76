package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// LTIVersion is the only LTI version the launch supports.
const LTIVersion = "1.3.0"

const (
	EnvLTIVersion              = "ASPIREDU_LTI_VERSION"
	EnvLTIIssuer               = "ASPIREDU_LTI_ISSUER"
	EnvLTIClientID             = "ASPIREDU_LTI_CLIENT_ID"
	EnvLTIDeploymentID         = "ASPIREDU_LTI_DEPLOYMENT_ID"
	EnvLTILoginURL             = "ASPIREDU_LTI_LOGIN_URL"
	EnvLTIRedirectURIs         = "ASPIREDU_LTI_REDIRECT_URIS"
	EnvLTIKeyID                = "ASPIREDU_LTI_KEY_ID"
	EnvLTIPrivateKeyFile       = "ASPIREDU_LTI_PRIVATE_KEY_FILE"
	EnvLTITokenTTL             = "ASPIREDU_LTI_TOKEN_TTL"
	EnvLTIDropoutDetectiveURL  = "ASPIREDU_LTI_DROPOUT_DETECTIVE_URL"
	EnvLTIInstructorInsightURL = "ASPIREDU_LTI_INSTRUCTOR_INSIGHT_URL"
)

// LTIConfig holds the platform side of the LTI 1.3 registration with the
// AspirEDU tool.
type LTIConfig struct {
	Version string `toml:"version"`
	// Issuer is the platform issuer, normally the LMS site URL.
	Issuer       string `toml:"issuer"`
	ClientID     string `toml:"client_id"`
	DeploymentID string `toml:"deployment_id"`
	// LoginURL is the tool's OIDC login initiation endpoint.
	LoginURL     string   `toml:"login_url"`
	RedirectURIs []string `toml:"redirect_uris"`
	KeyID        string   `toml:"key_id"`
	// PrivateKeyFile holds a PEM encoded RSA key. When empty a key is
	// generated at startup and tokens do not survive a restart.
	PrivateKeyFile string `toml:"private_key_file"`
	TokenTTL       string `toml:"token_ttl"`
	// Product URLs used when the plugin settings leave them blank.
	DropoutDetectiveURL  string `toml:"dropout_detective_url"`
	InstructorInsightURL string `toml:"instructor_insight_url"`
}

// TokenTTLDuration returns TokenTTL as a time.Duration.
func (c *LTIConfig) TokenTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TokenTTL)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *LTIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *LTIConfig) Merge(overlay *LTIConfig) {
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.ClientID != "" {
		c.ClientID = overlay.ClientID
	}
	if overlay.DeploymentID != "" {
		c.DeploymentID = overlay.DeploymentID
	}
	if overlay.LoginURL != "" {
		c.LoginURL = overlay.LoginURL
	}
	if overlay.RedirectURIs != nil {
		c.RedirectURIs = overlay.RedirectURIs
	}
	if overlay.KeyID != "" {
		c.KeyID = overlay.KeyID
	}
	if overlay.PrivateKeyFile != "" {
		c.PrivateKeyFile = overlay.PrivateKeyFile
	}
	if overlay.TokenTTL != "" {
		c.TokenTTL = overlay.TokenTTL
	}
	if overlay.DropoutDetectiveURL != "" {
		c.DropoutDetectiveURL = overlay.DropoutDetectiveURL
	}
	if overlay.InstructorInsightURL != "" {
		c.InstructorInsightURL = overlay.InstructorInsightURL
	}
}

func (c *LTIConfig) loadDefaults() {
	if c.Version == "" {
		c.Version = LTIVersion
	}
	if c.DeploymentID == "" {
		c.DeploymentID = "1"
	}
	if c.KeyID == "" {
		c.KeyID = "aspiredu-1"
	}
	if c.TokenTTL == "" {
		c.TokenTTL = "5m"
	}
}

func (c *LTIConfig) loadEnv() {
	set := func(env string, field *string) {
		if v := os.Getenv(env); v != "" {
			*field = v
		}
	}

	set(EnvLTIVersion, &c.Version)
	set(EnvLTIIssuer, &c.Issuer)
	set(EnvLTIClientID, &c.ClientID)
	set(EnvLTIDeploymentID, &c.DeploymentID)
	set(EnvLTILoginURL, &c.LoginURL)
	set(EnvLTIKeyID, &c.KeyID)
	set(EnvLTIPrivateKeyFile, &c.PrivateKeyFile)
	set(EnvLTITokenTTL, &c.TokenTTL)
	set(EnvLTIDropoutDetectiveURL, &c.DropoutDetectiveURL)
	set(EnvLTIInstructorInsightURL, &c.InstructorInsightURL)

	if v := os.Getenv(EnvLTIRedirectURIs); v != "" {
		uris := make([]string, 0)
		for uri := range strings.SplitSeq(v, ",") {
			if trimmed := strings.TrimSpace(uri); trimmed != "" {
				uris = append(uris, trimmed)
			}
		}
		c.RedirectURIs = uris
	}
}

func (c *LTIConfig) validate() error {
	if c.Version != LTIVersion {
		return fmt.Errorf("unsupported lti version %q, only %s is supported", c.Version, LTIVersion)
	}
	if c.Issuer == "" {
		return fmt.Errorf("issuer required")
	}
	if c.ClientID == "" {
		return fmt.Errorf("client_id required")
	}
	if err := absoluteURL("login_url", c.LoginURL); err != nil {
		return err
	}
	if len(c.RedirectURIs) == 0 {
		return fmt.Errorf("at least one redirect_uri required")
	}
	for _, uri := range c.RedirectURIs {
		if err := absoluteURL("redirect_uri", uri); err != nil {
			return err
		}
	}
	if d, err := time.ParseDuration(c.TokenTTL); err != nil || d <= 0 {
		return fmt.Errorf("invalid token_ttl: %s", c.TokenTTL)
	}
	return nil
}

func absoluteURL(name, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s required", name)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid %s: %s", name, raw)
	}
	return nil
}
