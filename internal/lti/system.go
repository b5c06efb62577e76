package lti

import (
	"context"
	"net/url"

	"github.com/go-jose/go-jose/v4"

	"github.com/JaimeStill/aspiredu/internal/access"
	"github.com/JaimeStill/aspiredu/internal/settings"
	"github.com/JaimeStill/aspiredu/pkg/listquery"
)

// LaunchRequest names the course and product a user launches.
type LaunchRequest struct {
	CourseID int64
	Product  string
}

// AuthRequest is the OIDC authentication request a tool sends after login
// initiation.
type AuthRequest struct {
	Scope        string `validate:"required,eq=openid"`
	ResponseType string `validate:"required,eq=id_token"`
	ResponseMode string `validate:"required,eq=form_post"`
	Prompt       string `validate:"required,eq=none"`
	ClientID     string `validate:"required"`
	RedirectURI  string `validate:"required,url"`
	LoginHint    string `validate:"required"`
	MessageHint  string `validate:"required"`
	Nonce        string `validate:"required"`
	State        string
}

// Field is one hidden input of a FormPost.
type Field struct {
	Name  string
	Value string
}

// FormPost is an auto-submitting form delivering the launch to the tool.
type FormPost struct {
	Action string
	Fields []Field
}

// SettingsLoader reads the plugin settings holding the product URLs.
type SettingsLoader interface {
	Load(ctx context.Context) (settings.Settings, error)
}

// Resolver loads an LMS user as a Requester.
type Resolver interface {
	Resolve(ctx context.Context, field, value string) (*access.Requester, error)
}

// System defines the public contract for LTI launches.
type System interface {
	Handler() *Handler

	// Launch returns the tool login initiation URL for a product launch.
	Launch(ctx context.Context, r listquery.Requester, req LaunchRequest) (*url.URL, error)

	// Authorize answers an authentication request with the signed launch.
	Authorize(ctx context.Context, req AuthRequest) (*FormPost, error)

	// JWKS returns the platform public keys.
	JWKS() jose.JSONWebKeySet
}
