package settings

import (
	"context"

	"github.com/JaimeStill/aspiredu/internal/access"
	"github.com/JaimeStill/aspiredu/pkg/listquery"
	"github.com/JaimeStill/aspiredu/pkg/pagination"
)

// Target identifies the page a link would be rendered on. InstanceID is
// optional; when set, capabilities are also checked in that context.
type Target struct {
	Level      int
	InstanceID int64
	SiteHome   bool
}

// Links reports which plugin links the requester sees at a target.
type Links struct {
	Scope             Scope `json:"scope"`
	Admin             bool  `json:"admin"`
	DropoutDetective  bool  `json:"dropoutdetective"`
	InstructorInsight bool  `json:"instructorinsight"`
	CourseSettings    bool  `json:"coursesettings"`
}

// PluginInfo describes the running release.
type PluginInfo struct {
	Release  string              `json:"release"`
	Version  string              `json:"version,omitempty"`
	Warnings []listquery.Warning `json:"warnings"`
}

// System defines the public contract for plugin settings.
type System interface {
	pagination.Source

	Handler() *Handler

	Load(ctx context.Context) (Settings, error)
	Links(ctx context.Context, r *access.Requester, t Target) (*Links, error)
	PluginInfo(ctx context.Context, r *access.Requester) (*PluginInfo, error)
}
