// Package assignments serves assignment activities and their submissions.
package assignments

import (
	"context"

	"github.com/JaimeStill/aspiredu/pkg/listquery"
)

// System defines the public contract for assignment queries.
type System interface {
	Handler() *Handler

	Assignments(
		ctx context.Context,
		r listquery.Requester,
		courseID int64,
		dates listquery.DateRange,
		q listquery.Query,
	) (*listquery.Result[Assignment], error)

	Submissions(
		ctx context.Context,
		r listquery.Requester,
		assignmentID int64,
		opts SubmissionOptions,
		q listquery.Query,
	) (*listquery.Result[Submission], error)
}
