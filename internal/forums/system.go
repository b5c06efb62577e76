// Package forums serves forum posts and forums to the analytics suite.
package forums

import (
	"context"

	"github.com/JaimeStill/aspiredu/pkg/listquery"
)

// System defines the public contract for forum queries.
type System interface {
	Handler() *Handler

	Posts(
		ctx context.Context,
		r listquery.Requester,
		discussionID int64,
		opts PostOptions,
		q listquery.Query,
	) (*listquery.Result[Post], error)

	Forums(
		ctx context.Context,
		r listquery.Requester,
		opts ForumOptions,
		q listquery.Query,
	) (*listquery.Result[Forum], error)
}
