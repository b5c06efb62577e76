package assignments

import (
	"github.com/JaimeStill/aspiredu/internal/lms"
	"github.com/JaimeStill/aspiredu/pkg/listquery"
	"github.com/JaimeStill/aspiredu/pkg/query"
	"github.com/JaimeStill/aspiredu/pkg/repository"
)

var assignmentProjection = query.
	NewProjectionMap("mdl_assign", "a").
	Join("JOIN mdl_modules m ON m.name = 'assign'").
	Join("JOIN mdl_course_modules cm ON cm.module = m.id AND cm.instance = a.id AND cm.deletioninprogress = 0").
	Join("JOIN mdl_context ctx ON ctx.contextlevel = 70 AND ctx.instanceid = cm.id").
	Project("id", "id").
	Project("cm.id", "cmid").
	Project("course", "course").
	Project("name", "name").
	Project("duedate", "duedate").
	Project("grade", "grade").
	Project("timemodified", "timemodified").
	Project("cm.visible", "visible").
	Project("ctx.path", "path")

var submissionProjection = query.
	NewProjectionMap("mdl_assign_submission", "s").
	Project("id", "id").
	Project("assignment", "assignment").
	Project("userid", "userid").
	Project("attemptnumber", "attemptnumber").
	Project("timecreated", "timecreated").
	Project("timemodified", "timemodified").
	Project("status", "status")

var defaultSort = query.SortField{Field: "id"}

func scanAssignment(s repository.Scanner) (Assignment, error) {
	var a Assignment
	var visible int
	err := s.Scan(
		&a.ID, &a.CMID, &a.Course, &a.Name, &a.DueDate, &a.Grade, &a.TimeModified,
		&visible, &a.contextPath,
	)
	a.visible = visible == 1
	return a, err
}

func scanSubmission(s repository.Scanner) (Submission, error) {
	var sub Submission
	err := s.Scan(
		&sub.SubmissionID, &sub.AssignmentID, &sub.UserID, &sub.AttemptNumber,
		&sub.TimeCreated, &sub.TimeModified, &sub.Status,
	)
	return sub, err
}

// AssignmentSorter orders assignments by id (default), name, duedate or timemodified.
func AssignmentSorter() *listquery.Sorter[Assignment] {
	return listquery.
		NewSorter("id", listquery.By(func(a Assignment) int64 { return a.ID })).
		Field("name", listquery.By(func(a Assignment) string { return a.Name })).
		Field("duedate", listquery.By(func(a Assignment) int64 { return a.DueDate })).
		Field("timemodified", listquery.By(func(a Assignment) int64 { return a.TimeModified }))
}

// SubmissionSorter orders submissions by id (default), userid or timemodified.
func SubmissionSorter() *listquery.Sorter[Submission] {
	return listquery.
		NewSorter("id", listquery.By(func(s Submission) int64 { return s.SubmissionID })).
		Field("userid", listquery.By(func(s Submission) int64 { return s.UserID })).
		Field("timemodified", listquery.By(func(s Submission) int64 { return s.TimeModified }))
}

// AssignmentFilter drops assignments hidden from the requester.
var AssignmentFilter = listquery.FilterFunc[Assignment](func(a Assignment, r listquery.Requester) listquery.Decision {
	if !a.visible && !r.Can(lms.CapViewHiddenActivities, a.contextPath) {
		return listquery.Deny(nil)
	}
	return listquery.Allow()
})
