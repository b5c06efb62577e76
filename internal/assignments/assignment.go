package assignments

import (
	"slices"

	"github.com/JaimeStill/aspiredu/pkg/listquery"
)

// Assignment is an assignment activity of a course.
type Assignment struct {
	ID           int64  `json:"id"`
	CMID         int64  `json:"cmid"`
	Course       int64  `json:"course"`
	Name         string `json:"name"`
	DueDate      int64  `json:"duedate"`
	Grade        int64  `json:"grade"`
	TimeModified int64  `json:"timemodified"`

	visible     bool
	contextPath string
}

// Submission is the latest attempt of a user at an assignment.
type Submission struct {
	SubmissionID  int64  `json:"submissionid"`
	AssignmentID  int64  `json:"assignmentid"`
	UserID        int64  `json:"userid"`
	AttemptNumber int    `json:"attemptnumber"`
	TimeCreated   int64  `json:"timecreated"`
	TimeModified  int64  `json:"timemodified"`
	Status        string `json:"status"`
}

// Statuses lists the submission states an LMS records.
var Statuses = []string{"new", "draft", "submitted", "reopened"}

// SubmissionOptions narrows the submissions of an assignment.
type SubmissionOptions struct {
	Status string
	Dates  listquery.DateRange
}

// Validate rejects unknown statuses.
func (o SubmissionOptions) Validate() error {
	if o.Status != "" && !slices.Contains(Statuses, o.Status) {
		return listquery.Invalid("status", o.Status, Statuses...)
	}
	return nil
}
