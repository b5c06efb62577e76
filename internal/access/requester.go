// Package access resolves the LMS identity behind an API call and answers
// capability checks against the LMS context tree.
package access

import (
	"context"
	"strings"

	"github.com/JaimeStill/aspiredu/internal/lms"
)

// Grant allows Capability in the context at Path and all of its descendants.
type Grant struct {
	Path       string
	Capability string
}

// Requester is an authenticated LMS user with the capabilities of their role assignments.
type Requester struct {
	id        int64
	siteAdmin bool
	grants    map[string][]string
}

// NewRequester builds a Requester for user id. Site admins hold every capability.
func NewRequester(id int64, siteAdmin bool, grants ...Grant) *Requester {
	r := &Requester{
		id:        id,
		siteAdmin: siteAdmin,
		grants:    make(map[string][]string),
	}
	for _, g := range grants {
		r.grants[g.Capability] = append(r.grants[g.Capability], strings.TrimSuffix(g.Path, "/"))
	}
	return r
}

// UserID returns the LMS user id.
func (r *Requester) UserID() int64 {
	if r == nil {
		return 0
	}
	return r.id
}

// SiteAdmin reports whether the user is listed in the site administrators.
func (r *Requester) SiteAdmin() bool {
	return r != nil && r.siteAdmin
}

// Can reports whether capability is granted at scope or at any of its ancestors.
func (r *Requester) Can(capability, scope string) bool {
	if r == nil {
		return false
	}
	if r.siteAdmin {
		return true
	}
	for _, p := range r.grants[capability] {
		if scope == p || strings.HasPrefix(scope, p+"/") {
			return true
		}
	}
	return false
}

// Admin reports whether the user administers the site or either product.
func (r *Requester) Admin() bool {
	return r.Can(lms.CapSiteConfig, lms.SystemPath) ||
		r.Can(lms.CapViewDropoutDetective, lms.SystemPath) ||
		r.Can(lms.CapViewInstructorInsight, lms.SystemPath)
}

type contextKey struct{}

// WithRequester returns a copy of ctx carrying r.
func WithRequester(ctx context.Context, r *Requester) context.Context {
	return context.WithValue(ctx, contextKey{}, r)
}

// FromContext returns the Requester stored by the authentication middleware, or nil.
func FromContext(ctx context.Context) *Requester {
	r, _ := ctx.Value(contextKey{}).(*Requester)
	return r
}
