// Package lti launches the AspirEDU tools from the LMS as an LTI 1.3
// platform: third-party initiated login, the OIDC authorization response
// carrying the signed launch, and the platform key set.
package lti

import (
	"embed"
	"fmt"

	"github.com/JaimeStill/aspiredu/internal/lms"
	"github.com/JaimeStill/aspiredu/pkg/web"
)

//go:embed templates/*.html
var templates embed.FS

const formPostView = "templates/form_post.html"

func newPages() (*web.TemplateSet, error) {
	return web.NewTemplateSet(templates, "templates/layout.html", "layout", formPostView)
}

// Product is an AspirEDU tool reachable by launch.
type Product struct {
	Code       string
	Name       string
	Capability string
}

var products = map[string]Product{
	"dd": {Code: "dd", Name: "Dropout Detective", Capability: lms.CapViewDropoutDetective},
	"ii": {Code: "ii", Name: "Instructor Insight", Capability: lms.CapViewInstructorInsight},
}

// LookupProduct returns the product with code "dd" or "ii".
func LookupProduct(code string) (Product, error) {
	p, ok := products[code]
	if !ok {
		return Product{}, fmt.Errorf("%w: %q", ErrUnknownProduct, code)
	}
	return p, nil
}

// LTI claim names and vocabulary.
const (
	MessageTypeResourceLink = "LtiResourceLinkRequest"
	ContextTypeCourse       = "http://purl.imsglobal.org/vocab/lis/v2/course#CourseOffering"
	RoleInstructor          = "http://purl.imsglobal.org/vocab/lis/v2/membership#Instructor"
	RoleLearner             = "http://purl.imsglobal.org/vocab/lis/v2/membership#Learner"
	RoleInstitutionAdmin    = "http://purl.imsglobal.org/vocab/lis/v2/institution/person#Administrator"
	RoleSystemAdmin         = "http://purl.imsglobal.org/vocab/lis/v2/system/person#Administrator"
)
