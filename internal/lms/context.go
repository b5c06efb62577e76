package lms

import (
	"context"
	"fmt"

	"github.com/JaimeStill/aspiredu/pkg/listquery"
	"github.com/JaimeStill/aspiredu/pkg/repository"
)

// Context is a node of the LMS context tree. Path lists the ids of the
// context and its ancestors, e.g. "/1/3/27".
type Context struct {
	ID         int64  `json:"id"`
	Level      int    `json:"contextlevel"`
	InstanceID int64  `json:"instanceid"`
	Path       string `json:"path"`
}

const contextSQL = `
	SELECT id, contextlevel, instanceid, path
	FROM mdl_context
	WHERE contextlevel = $1 AND instanceid = $2`

func scanContext(s repository.Scanner) (Context, error) {
	var c Context
	err := s.Scan(&c.ID, &c.Level, &c.InstanceID, &c.Path)
	return c, err
}

// FindContext returns the context at level for instanceID.
func FindContext(ctx context.Context, q repository.Querier, level int, instanceID int64) (Context, error) {
	if level == LevelSystem {
		instanceID = 0
	}
	c, err := repository.QueryOne(ctx, q, contextSQL, []any{level, instanceID}, scanContext)
	if err != nil {
		return Context{}, repository.MapError(err, listquery.NotFound("context", fmt.Sprintf("%d/%d", level, instanceID)))
	}
	return c, nil
}

// CourseContext returns the context for courseID. The site course maps to
// the system context.
func CourseContext(ctx context.Context, q repository.Querier, courseID, siteCourseID int64) (Context, error) {
	if courseID == siteCourseID {
		return FindContext(ctx, q, LevelSystem, 0)
	}
	return FindContext(ctx, q, LevelCourse, courseID)
}
