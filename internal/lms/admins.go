package lms

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/JaimeStill/aspiredu/pkg/repository"
)

const siteAdminsSQL = `SELECT value FROM mdl_config WHERE name = 'siteadmins'`

// SiteAdminIDs returns the user ids listed in the siteadmins setting.
// Entries that are not integers are ignored.
func SiteAdminIDs(ctx context.Context, q repository.Querier) ([]int64, error) {
	var list string
	err := q.QueryRowContext(ctx, siteAdminsSQL).Scan(&list)
	if errors.Is(err, sql.ErrNoRows) {
		return []int64{}, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseIDList(list), nil
}

// ParseIDList splits a comma-separated id list.
func ParseIDList(list string) []int64 {
	ids := make([]int64, 0)
	for part := range strings.SplitSeq(list, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
