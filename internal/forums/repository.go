package forums

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/aspiredu/internal/lms"
	"github.com/JaimeStill/aspiredu/pkg/listquery"
	"github.com/JaimeStill/aspiredu/pkg/pagination"
	"github.com/JaimeStill/aspiredu/pkg/query"
	"github.com/JaimeStill/aspiredu/pkg/repository"
)

// courseConcurrency bounds the per-course lookups of a forums query.
const courseConcurrency = 4

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Source
	posts      *listquery.Service[Post]
	forums     *listquery.Service[Forum]
}

// New creates a forum repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Source) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "forums"),
		pagination: pagination,
		posts:      listquery.New(PostSorter()),
		forums:     listquery.New(ForumSorter()),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Posts(
	ctx context.Context,
	req listquery.Requester,
	discussionID int64,
	opts PostOptions,
	q listquery.Query,
) (*listquery.Result[Post], error) {
	var filter PostFilter

	src := listquery.DataSource[Post]{
		Authorize: func(ctx context.Context, req listquery.Requester) error {
			d, err := r.discussion(ctx, req, discussionID)
			if err != nil {
				return err
			}
			filter.Discussion = d
			return nil
		},
		Fetch: func(ctx context.Context) ([]Post, error) {
			d := filter.Discussion
			if d.ForumType == "qanda" {
				posted, err := repository.Exists(ctx, r.db, postedSQL, d.ID, req.UserID())
				if err != nil {
					return nil, fmt.Errorf("check posted: %w", err)
				}
				filter.Posted = posted
			}
			posts, err := r.fetchPosts(ctx, d.ID, opts)
			if err != nil {
				return nil, err
			}
			linkChildren(posts, func(p Post) bool { return filter.Include(p, req).Included })
			return posts, nil
		},
		Filter: &filter,
	}

	return r.posts.Execute(ctx, src, req, q)
}

// discussion loads the discussion and checks the requester may read it.
func (r *repo) discussion(ctx context.Context, req listquery.Requester, id int64) (Discussion, error) {
	d, err := repository.QueryOne(ctx, r.db, discussionSQL, []any{id}, scanDiscussion)
	if err != nil {
		return Discussion{}, repository.MapError(err, listquery.NotFound("discussion", id))
	}

	if !req.Can(lms.CapForumViewDiscussion, d.ContextPath) {
		return Discussion{}, listquery.Forbidden(lms.CapForumViewDiscussion)
	}

	if d.GroupMode == lms.SeparateGroups && d.GroupID > 0 && !req.Can(lms.CapAccessAllGroups, d.ContextPath) {
		member, err := lms.IsGroupMember(ctx, r.db, d.GroupID, req.UserID())
		if err != nil {
			return Discussion{}, fmt.Errorf("check group: %w", err)
		}
		if !member {
			return Discussion{}, listquery.Forbidden(lms.CapAccessAllGroups)
		}
	}

	return d, nil
}

func (r *repo) fetchPosts(ctx context.Context, discussionID int64, opts PostOptions) ([]Post, error) {
	qb := query.
		NewBuilder(postProjection, postSort).
		WhereEquals("discussion", discussionID).
		Where("p.deleted = 0").
		WhereRange("created", opts.Dates.Start, opts.Dates.End)

	stmt, args := qb.Build()
	posts, err := repository.QueryMany(ctx, r.db, stmt, args, scanPost)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}

	if !opts.IncludeContent {
		for i := range posts {
			posts[i].Message = nil
			posts[i].MessageFormat = nil
		}
	}
	return posts, nil
}

func (r *repo) Forums(
	ctx context.Context,
	req listquery.Requester,
	opts ForumOptions,
	q listquery.Query,
) (*listquery.Result[Forum], error) {
	src := listquery.DataSource[Forum]{
		Fetch: func(ctx context.Context) ([]Forum, error) {
			ids := opts.CourseIDs
			if len(ids) == 0 {
				var err error
				if ids, err = lms.EnrolledCourseIDs(ctx, r.db, req.UserID()); err != nil {
					return nil, fmt.Errorf("enrolled courses: %w", err)
				}
			}
			return r.fetchForums(ctx, ids, opts.Dates)
		},
		Filter: ForumFilter,
	}

	return r.forums.Execute(ctx, src, req, q)
}

// fetchForums loads each distinct course concurrently and concatenates the
// results in first-seen course order.
func (r *repo) fetchForums(ctx context.Context, courseIDs []int64, dates listquery.DateRange) ([]Forum, error) {
	courseIDs = distinct(courseIDs)
	results := make([][]Forum, len(courseIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(courseConcurrency)

	for i, id := range courseIDs {
		g.Go(func() error {
			if _, err := lms.FindContext(gctx, r.db, lms.LevelCourse, id); err != nil {
				return err
			}

			stmt, args := query.
				NewBuilder(forumProjection, forumSort).
				WhereEquals("course", id).
				WhereRange("timemodified", dates.Start, dates.End).
				Build()

			forums, err := repository.QueryMany(gctx, r.db, stmt, args, scanForum)
			if err != nil {
				return fmt.Errorf("query forums for course %d: %w", id, err)
			}
			results[i] = forums
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]Forum, 0)
	for _, forums := range results {
		all = append(all, forums...)
	}
	return all, nil
}

func distinct(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
