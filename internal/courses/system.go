// Package courses serves courses, their flattened contents, and course
// module lookups.
package courses

import (
	"context"

	"github.com/JaimeStill/aspiredu/pkg/listquery"
)

// System defines the public contract for course queries.
type System interface {
	Handler() *Handler

	Courses(
		ctx context.Context,
		r listquery.Requester,
		opts CourseOptions,
		q listquery.Query,
	) (*listquery.Result[Course], error)

	Contents(
		ctx context.Context,
		r listquery.Requester,
		courseID int64,
		dates listquery.DateRange,
		q listquery.Query,
	) (*listquery.Result[Content], error)

	ModuleFromInstance(
		ctx context.Context,
		r listquery.Requester,
		modname string,
		instance int64,
	) (*ModuleResult, error)
}
