package logs

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/aspiredu/internal/lms"
	"github.com/JaimeStill/aspiredu/pkg/listquery"
	"github.com/JaimeStill/aspiredu/pkg/pagination"
	"github.com/JaimeStill/aspiredu/pkg/repository"
)

type repo struct {
	db           *sql.DB
	logger       *slog.Logger
	pagination   pagination.Source
	siteCourseID int64
}

// New creates a log repository implementing the System interface.
// A zero course id in a query reads the logs of siteCourseID.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Source, siteCourseID int64) System {
	return &repo{
		db:           db,
		logger:       logger.With("system", "logs"),
		pagination:   pagination,
		siteCourseID: siteCourseID,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Records(
	ctx context.Context,
	req listquery.Requester,
	opts Options,
	q listquery.Query,
) (*listquery.Result[Record], error) {
	if err := q.Direction.Validate(); err != nil {
		return nil, err
	}
	if q.SortField != "" && q.SortField != SortField {
		return nil, listquery.Invalid("sort_by", q.SortField, SortField)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	crud, _ := opts.crud()

	if opts.CourseID == 0 {
		opts.CourseID = r.siteCourseID
	}

	course, err := lms.CourseContext(ctx, r.db, opts.CourseID, r.siteCourseID)
	if err != nil {
		return nil, err
	}
	if err := listquery.RequireCapability(lms.CapReportLogView, course.Path)(ctx, req); err != nil {
		return nil, err
	}

	qb := builder(opts, r.siteCourseID, crud, q.Direction == listquery.Descending)

	return repository.WithSnapshot(ctx, r.db, func(tx *sql.Tx) (*listquery.Result[Record], error) {
		countSQL, countArgs := qb.BuildCount()
		total, err := repository.QueryOne(ctx, tx, countSQL, countArgs, scanCount)
		if err != nil {
			return nil, fmt.Errorf("count log records: %w", repository.MapError(err, nil))
		}

		page := pagination.Clamp(q.Page, q.PageSize, total)
		stmt, args := qb.BuildPage(page, q.PageSize)
		items, err := repository.QueryMany(ctx, tx, stmt, args, scanRecord)
		if err != nil {
			return nil, fmt.Errorf("query log records: %w", repository.MapError(err, nil))
		}

		r.logger.Debug("log records read", "course", opts.CourseID, "total", total, "page", page)

		return &listquery.Result[Record]{
			PageResult: pagination.NewPageResult(items, total, page, q.PageSize),
			Warnings:   []listquery.Warning{},
		}, nil
	})
}
