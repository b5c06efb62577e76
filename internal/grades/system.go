// Package grades serves course grade items and user grades.
package grades

import (
	"context"

	"github.com/JaimeStill/aspiredu/pkg/listquery"
)

// System defines the public contract for grade queries.
type System interface {
	Handler() *Handler

	Grades(
		ctx context.Context,
		r listquery.Requester,
		courseID int64,
		opts Options,
		q listquery.Query,
	) (*listquery.Result[Item], error)
}
