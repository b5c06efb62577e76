package lti

import "github.com/golang-jwt/jwt/v5"

// hintClaims bind a login initiation to the user, course, and product it
// was issued for. The tool echoes the hint back to the auth endpoint.
type hintClaims struct {
	jwt.RegisteredClaims
	Course  int64  `json:"course"`
	Product string `json:"product"`
	Target  string `json:"target"`
}

// ResourceLink identifies the placement a launch came from.
type ResourceLink struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
}

// CourseContext describes the course a launch happens in.
type CourseContext struct {
	ID    string   `json:"id"`
	Label string   `json:"label,omitempty"`
	Title string   `json:"title,omitempty"`
	Type  []string `json:"type"`
}

// Platform describes the LMS issuing the launch.
type Platform struct {
	GUID              string `json:"guid"`
	Name              string `json:"name,omitempty"`
	ProductFamilyCode string `json:"product_family_code"`
}

// LaunchClaims is the id_token of a resource link launch.
type LaunchClaims struct {
	jwt.RegisteredClaims
	Nonce           string `json:"nonce"`
	AuthorizedParty string `json:"azp,omitempty"`
	Name            string `json:"name,omitempty"`
	GivenName       string `json:"given_name,omitempty"`
	FamilyName      string `json:"family_name,omitempty"`
	Email           string `json:"email,omitempty"`

	MessageType   string            `json:"https://purl.imsglobal.org/spec/lti/claim/message_type"`
	Version       string            `json:"https://purl.imsglobal.org/spec/lti/claim/version"`
	DeploymentID  string            `json:"https://purl.imsglobal.org/spec/lti/claim/deployment_id"`
	TargetLinkURI string            `json:"https://purl.imsglobal.org/spec/lti/claim/target_link_uri"`
	ResourceLink  ResourceLink      `json:"https://purl.imsglobal.org/spec/lti/claim/resource_link"`
	Context       CourseContext     `json:"https://purl.imsglobal.org/spec/lti/claim/context"`
	Roles         []string          `json:"https://purl.imsglobal.org/spec/lti/claim/roles"`
	ToolPlatform  Platform          `json:"https://purl.imsglobal.org/spec/lti/claim/tool_platform"`
	Custom        map[string]string `json:"https://purl.imsglobal.org/spec/lti/claim/custom,omitempty"`
}
