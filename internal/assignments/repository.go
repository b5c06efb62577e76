package assignments

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/aspiredu/internal/lms"
	"github.com/JaimeStill/aspiredu/pkg/listquery"
	"github.com/JaimeStill/aspiredu/pkg/pagination"
	"github.com/JaimeStill/aspiredu/pkg/query"
	"github.com/JaimeStill/aspiredu/pkg/repository"
)

type repo struct {
	db          *sql.DB
	logger      *slog.Logger
	pagination  pagination.Source
	assignments *listquery.Service[Assignment]
	submissions *listquery.Service[Submission]
}

// New creates an assignment repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Source) System {
	return &repo{
		db:          db,
		logger:      logger.With("system", "assignments"),
		pagination:  pagination,
		assignments: listquery.New(AssignmentSorter()),
		submissions: listquery.New(SubmissionSorter()),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Assignments(
	ctx context.Context,
	req listquery.Requester,
	courseID int64,
	dates listquery.DateRange,
	q listquery.Query,
) (*listquery.Result[Assignment], error) {
	src := listquery.DataSource[Assignment]{
		Authorize: func(ctx context.Context, req listquery.Requester) error {
			course, err := lms.FindContext(ctx, r.db, lms.LevelCourse, courseID)
			if err != nil {
				return err
			}
			return listquery.RequireCapability(lms.CapAssignView, course.Path)(ctx, req)
		},
		Fetch: func(ctx context.Context) ([]Assignment, error) {
			stmt, args := query.
				NewBuilder(assignmentProjection, defaultSort).
				WhereEquals("course", courseID).
				WhereRange("timemodified", dates.Start, dates.End).
				Build()

			items, err := repository.QueryMany(ctx, r.db, stmt, args, scanAssignment)
			if err != nil {
				return nil, fmt.Errorf("query assignments: %w", err)
			}
			return items, nil
		},
		Filter: AssignmentFilter,
	}

	return r.assignments.Execute(ctx, src, req, q)
}

func (r *repo) Submissions(
	ctx context.Context,
	req listquery.Requester,
	assignmentID int64,
	opts SubmissionOptions,
	q listquery.Query,
) (*listquery.Result[Submission], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	src := listquery.DataSource[Submission]{
		Authorize: func(ctx context.Context, req listquery.Requester) error {
			cm, err := lms.FindCourseModule(ctx, r.db, "assign", assignmentID)
			if err != nil {
				return err
			}
			return listquery.RequireCapability(lms.CapAssignGrade, cm.ContextPath)(ctx, req)
		},
		Fetch: func(ctx context.Context) ([]Submission, error) {
			qb := query.
				NewBuilder(submissionProjection, defaultSort).
				WhereEquals("assignment", assignmentID).
				Where("s.latest = 1").
				WhereRange("timemodified", opts.Dates.Start, opts.Dates.End)
			if opts.Status != "" {
				qb.WhereEquals("status", opts.Status)
			}

			stmt, args := qb.Build()
			items, err := repository.QueryMany(ctx, r.db, stmt, args, scanSubmission)
			if err != nil {
				return nil, fmt.Errorf("query submissions: %w", err)
			}
			return items, nil
		},
	}

	return r.submissions.Execute(ctx, src, req, q)
}
