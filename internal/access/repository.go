package access

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/JaimeStill/aspiredu/internal/lms"
	"github.com/JaimeStill/aspiredu/pkg/repository"
)

// System resolves LMS users into Requesters.
type System interface {
	// Resolve finds the active user whose field equals value.
	Resolve(ctx context.Context, field, value string) (*Requester, error)
}

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates the requester resolver backed by the LMS database.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "access"),
	}
}

var userColumns = map[string]string{
	"id":       "CAST(id AS TEXT)",
	"username": "username",
	"idnumber": "idnumber",
	"email":    "LOWER(email)",
}

// Role capabilities are read from the system context definitions only.
// Overrides at lower contexts are not applied.
const grantsSQL = `
	SELECT ctx.path, rc.capability
	FROM mdl_role_assignments ra
	JOIN mdl_context ctx ON ctx.id = ra.contextid
	JOIN mdl_role_capabilities rc ON rc.roleid = ra.roleid AND rc.contextid = 1 AND rc.permission = 1
	WHERE ra.userid = $1
	UNION
	SELECT '/1', rc.capability
	FROM mdl_config cfg
	JOIN mdl_role_capabilities rc ON CAST(rc.roleid AS TEXT) = cfg.value AND rc.contextid = 1 AND rc.permission = 1
	WHERE cfg.name = 'defaultuserroleid'
	ORDER BY 1, 2`

func scanGrant(s repository.Scanner) (Grant, error) {
	var g Grant
	err := s.Scan(&g.Path, &g.Capability)
	return g, err
}

func (r *repo) Resolve(ctx context.Context, field, value string) (*Requester, error) {
	column, ok := userColumns[field]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserField, field)
	}
	if field == "email" {
		value = strings.ToLower(value)
	}

	userSQL := fmt.Sprintf(`
	SELECT id FROM mdl_user
	WHERE %s = $1 AND deleted = 0 AND suspended = 0`, column)

	req, err := repository.WithSnapshot(ctx, r.db, func(tx *sql.Tx) (*Requester, error) {
		ids, err := repository.QueryIDs(ctx, tx, userSQL, value)
		if err != nil {
			return nil, fmt.Errorf("find user: %w", err)
		}
		if len(ids) != 1 {
			return nil, fmt.Errorf("%w: %s=%s", ErrUnknownUser, field, value)
		}
		id := ids[0]

		admins, err := lms.SiteAdminIDs(ctx, tx)
		if err != nil {
			return nil, fmt.Errorf("load site admins: %w", err)
		}

		grants, err := repository.QueryMany(ctx, tx, grantsSQL, []any{id}, scanGrant)
		if err != nil {
			return nil, fmt.Errorf("load grants: %w", err)
		}

		return NewRequester(id, slices.Contains(admins, id), grants...), nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("requester resolved", "user", req.UserID(), "site_admin", req.SiteAdmin())
	return req, nil
}
