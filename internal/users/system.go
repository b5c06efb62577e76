// Package users serves LMS accounts selected by role or administrative status.
package users

import (
	"context"

	"github.com/JaimeStill/aspiredu/pkg/listquery"
)

// System defines the public contract for user queries.
type System interface {
	Handler() *Handler

	// ByRoles pages the distinct holders of any of roleIDs in any context.
	ByRoles(
		ctx context.Context,
		r listquery.Requester,
		roleIDs []int64,
		q listquery.Query,
	) (*listquery.Result[User], error)

	// SiteAdmins lists the configured site administrators.
	SiteAdmins(ctx context.Context, r listquery.Requester) (*Result, error)

	// RoleUsers lists the users assigned a role directly in one context.
	RoleUsers(ctx context.Context, r listquery.Requester, target RoleTarget) (*Result, error)
}
