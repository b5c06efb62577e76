package lms

import (
	"context"

	"github.com/JaimeStill/aspiredu/pkg/repository"
)

const enrolledUsersSQL = `
	SELECT DISTINCT ue.userid
	FROM mdl_user_enrolments ue
	JOIN mdl_enrol e ON e.id = ue.enrolid
	JOIN mdl_user u ON u.id = ue.userid
	WHERE e.courseid = $1 AND e.status = 0 AND ue.status = 0 AND u.deleted = 0
	ORDER BY ue.userid`

const enrolledCoursesSQL = `
	SELECT DISTINCT e.courseid
	FROM mdl_user_enrolments ue
	JOIN mdl_enrol e ON e.id = ue.enrolid
	WHERE ue.userid = $1 AND e.status = 0 AND ue.status = 0
	ORDER BY e.courseid`

const groupMemberSQL = `
	SELECT 1 FROM mdl_groups_members WHERE groupid = $1 AND userid = $2`

// EnrolledUserIDs returns the ids of users actively enrolled in courseID.
func EnrolledUserIDs(ctx context.Context, q repository.Querier, courseID int64) ([]int64, error) {
	return repository.QueryIDs(ctx, q, enrolledUsersSQL, courseID)
}

// EnrolledCourseIDs returns the ids of courses userID is actively enrolled in.
func EnrolledCourseIDs(ctx context.Context, q repository.Querier, userID int64) ([]int64, error) {
	return repository.QueryIDs(ctx, q, enrolledCoursesSQL, userID)
}

// IsGroupMember reports whether userID belongs to groupID.
func IsGroupMember(ctx context.Context, q repository.Querier, groupID, userID int64) (bool, error) {
	return repository.Exists(ctx, q, groupMemberSQL, groupID, userID)
}
