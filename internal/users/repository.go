package users

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
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Source
	svc        *listquery.Service[User]
}

// New creates a user repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Source) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "users"),
		pagination: pagination,
		svc:        listquery.New(Sorter()),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

var requireConfigView = listquery.RequireCapability(lms.CapSiteConfigView, lms.SystemPath)

func (r *repo) ByRoles(
	ctx context.Context,
	req listquery.Requester,
	roleIDs []int64,
	q listquery.Query,
) (*listquery.Result[User], error) {
	if len(roleIDs) == 0 {
		return nil, listquery.Invalid("roleids", "")
	}

	src := listquery.DataSource[User]{
		Authorize: requireConfigView,
		Fetch: func(ctx context.Context) ([]User, error) {
			stmt, args := query.
				NewBuilder(projection, defaultSort).
				Where("u.deleted = 0").
				Where(holdsAnyRole(len(roleIDs)), query.Values(roleIDs)...).
				Build()

			items, err := repository.QueryMany(ctx, r.db, stmt, args, scanUser)
			if err != nil {
				return nil, fmt.Errorf("query role holders: %w", err)
			}
			return items, nil
		},
	}

	return r.svc.Execute(ctx, src, req, q)
}

func (r *repo) SiteAdmins(ctx context.Context, req listquery.Requester) (*Result, error) {
	if err := requireConfigView(ctx, req); err != nil {
		return nil, err
	}

	users, err := repository.WithSnapshot(ctx, r.db, func(tx *sql.Tx) ([]User, error) {
		ids, err := lms.SiteAdminIDs(ctx, tx)
		if err != nil {
			return nil, fmt.Errorf("load site admins: %w", err)
		}
		if len(ids) == 0 {
			return []User{}, nil
		}

		stmt, args := query.
			NewBuilder(projection, defaultSort).
			WhereIn("id", query.Values(ids)).
			Where("u.deleted = 0").
			Build()

		return repository.QueryMany(ctx, tx, stmt, args, scanUser)
	})
	if err != nil {
		return nil, err
	}

	return newResult(users), nil
}

func (r *repo) RoleUsers(ctx context.Context, req listquery.Requester, target RoleTarget) (*Result, error) {
	if err := requireConfigView(ctx, req); err != nil {
		return nil, err
	}

	users, err := repository.WithSnapshot(ctx, r.db, func(tx *sql.Tx) ([]User, error) {
		var roleID int64
		if err := tx.QueryRowContext(ctx, roleSQL, target.ShortName).Scan(&roleID); err != nil {
			return nil, repository.MapError(err, listquery.NotFound("role", target.ShortName))
		}

		c, err := lms.FindContext(ctx, tx, target.Level, target.InstanceID)
		if err != nil {
			return nil, err
		}

		stmt, args := query.
			NewBuilder(projection, defaultSort).
			Where("u.deleted = 0").
			Where(holdsRoleInContext, roleID, c.ID).
			Build()

		return repository.QueryMany(ctx, tx, stmt, args, scanUser)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("role users listed", "role", target.ShortName, "count", len(users))
	return newResult(users), nil
}
