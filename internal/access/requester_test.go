package access_test

import (
	"context"
	"testing"

	"github.com/JaimeStill/aspiredu/internal/access"
	"github.com/JaimeStill/aspiredu/internal/lms"
)

func TestRequesterCan(t *testing.T) {
	r := access.NewRequester(7, false,
		access.Grant{Path: "/1/3", Capability: lms.CapCourseView},
		access.Grant{Path: "/1/3/27/", Capability: lms.CapAssignGrade},
	)

	tests := []struct {
		name       string
		capability string
		scope      string
		want       bool
	}{
		{"exact path", lms.CapCourseView, "/1/3", true},
		{"descendant", lms.CapCourseView, "/1/3/27/90", true},
		{"sibling prefix", lms.CapCourseView, "/1/30", false},
		{"ancestor", lms.CapCourseView, "/1", false},
		{"trailing slash grant", lms.CapAssignGrade, "/1/3/27", true},
		{"other capability", lms.CapCourseUpdate, "/1/3", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Can(tt.capability, tt.scope); got != tt.want {
				t.Errorf("Can(%s, %s) = %v, want %v", tt.capability, tt.scope, got, tt.want)
			}
		})
	}
}

func TestRequesterSiteAdmin(t *testing.T) {
	r := access.NewRequester(2, true)
	if !r.Can(lms.CapSiteConfig, lms.SystemPath) || !r.Can("any/capability:at", "/1/9/9") {
		t.Error("site admin should hold every capability")
	}
	if !r.Admin() {
		t.Error("site admin should be an admin")
	}
}

func TestRequesterNil(t *testing.T) {
	var r *access.Requester
	if r.Can(lms.CapCourseView, "/1") {
		t.Error("nil requester should hold nothing")
	}
	if r.UserID() != 0 || r.SiteAdmin() || r.Admin() {
		t.Error("nil requester should be anonymous")
	}
}

func TestRequesterAdmin(t *testing.T) {
	tests := []struct {
		name  string
		grant access.Grant
		want  bool
	}{
		{"site config", access.Grant{Path: "/1", Capability: lms.CapSiteConfig}, true},
		{"dropout detective", access.Grant{Path: "/1", Capability: lms.CapViewDropoutDetective}, true},
		{"instructor insight", access.Grant{Path: "/1", Capability: lms.CapViewInstructorInsight}, true},
		{"course level product", access.Grant{Path: "/1/3", Capability: lms.CapViewDropoutDetective}, false},
		{"unrelated", access.Grant{Path: "/1", Capability: lms.CapCourseView}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := access.NewRequester(5, false, tt.grant)
			if got := r.Admin(); got != tt.want {
				t.Errorf("Admin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	if access.FromContext(ctx) != nil {
		t.Error("empty context should carry no requester")
	}

	r := access.NewRequester(4, false)
	if got := access.FromContext(access.WithRequester(ctx, r)); got != r {
		t.Errorf("FromContext() = %v, want %v", got, r)
	}
}
