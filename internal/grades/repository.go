package grades

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/aspiredu/internal/lms"
	"github.com/JaimeStill/aspiredu/pkg/listquery"
	"github.com/JaimeStill/aspiredu/pkg/pagination"
	"github.com/JaimeStill/aspiredu/pkg/query"
	"github.com/JaimeStill/aspiredu/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Source
	svc        *listquery.Service[Item]
	now        func() time.Time
}

// New creates a grade repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Source) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "grades"),
		pagination: pagination,
		svc:        listquery.New(Sorter()),
		now:        time.Now,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Grades(
	ctx context.Context,
	req listquery.Requester,
	courseID int64,
	opts Options,
	q listquery.Query,
) (*listquery.Result[Item], error) {
	filter := ItemFilter{Now: r.now()}
	users := opts.UserIDs

	src := listquery.DataSource[Item]{
		Authorize: func(ctx context.Context, req listquery.Requester) error {
			path, resolved, err := r.authorize(ctx, req, courseID, users)
			if err != nil {
				return err
			}
			filter.CoursePath = path
			users = resolved
			return nil
		},
		Fetch: func(ctx context.Context) ([]Item, error) {
			viewHidden := req.Can(lms.CapGradeViewHidden, filter.CoursePath)
			return r.fetch(ctx, courseID, users, opts.Dates, viewHidden, filter.Now)
		},
		Filter: &filter,
	}

	return r.svc.Execute(ctx, src, req, q)
}

// authorize returns the course context path and the users whose grades are
// read. Viewing every user's grades needs moodle/grade:viewall. When the
// course shows grades, a single user may be viewed by themselves with
// moodle/grade:view, or by someone holding moodle/grade:viewall on that user.
func (r *repo) authorize(ctx context.Context, req listquery.Requester, courseID int64, users []int64) (string, []int64, error) {
	var showGrades int
	if err := r.db.QueryRowContext(ctx, courseSQL, courseID).Scan(&showGrades); err != nil {
		return "", nil, repository.MapError(err, listquery.NotFound("course", courseID))
	}

	course, err := lms.FindContext(ctx, r.db, lms.LevelCourse, courseID)
	if err != nil {
		return "", nil, err
	}

	if len(users) == 0 {
		if users, err = lms.EnrolledUserIDs(ctx, r.db, courseID); err != nil {
			return "", nil, fmt.Errorf("enrolled users: %w", err)
		}
	}

	if req.Can(lms.CapGradeViewAll, course.Path) {
		return course.Path, users, nil
	}

	if showGrades == 1 && len(users) == 1 {
		if users[0] == req.UserID() && req.Can(lms.CapGradeView, course.Path) {
			return course.Path, users, nil
		}
		user, err := lms.FindContext(ctx, r.db, lms.LevelUser, users[0])
		if err != nil && !errors.Is(err, listquery.ErrNotFound) {
			return "", nil, err
		}
		if err == nil && req.Can(lms.CapGradeViewAll, user.Path) {
			return course.Path, users, nil
		}
	}

	return "", nil, listquery.Forbidden(lms.CapGradeViewAll)
}

func (r *repo) fetch(
	ctx context.Context,
	courseID int64,
	users []int64,
	dates listquery.DateRange,
	viewHidden bool,
	now time.Time,
) ([]Item, error) {
	stmt, args := query.
		NewBuilder(itemProjection, itemSort).
		Where("gi.courseid = $%d", courseID).
		Where("gi.itemtype IN ('course', 'mod')").
		WhereRange("timemodified", dates.Start, dates.End).
		Build()

	items, err := repository.QueryMany(ctx, r.db, stmt, args, scanItem)
	if err != nil {
		return nil, fmt.Errorf("query grade items: %w", err)
	}
	if len(items) == 0 || len(users) == 0 {
		return items, nil
	}

	stmt, args = query.
		NewBuilder(gradeProjection, gradeSort).
		Where("gi.courseid = $%d", courseID).
		WhereIn("userid", query.Values(users)).
		Build()

	grades, err := repository.QueryMany(ctx, r.db, stmt, args, scanGrade)
	if err != nil {
		return nil, fmt.Errorf("query grades: %w", err)
	}

	index := make(map[int64]int, len(items))
	for i, it := range items {
		index[it.ID] = i
	}
	for _, g := range grades {
		i, ok := index[g.ItemID]
		if !ok || (!viewHidden && g.IsHidden(now)) {
			continue
		}
		items[i].Grades = append(items[i].Grades, g)
	}

	return items, nil
}
