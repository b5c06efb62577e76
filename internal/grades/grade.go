package grades

import (
	"strconv"
	"time"

	"github.com/JaimeStill/aspiredu/pkg/listquery"
)

// Item is a course or activity grade item with the grades of the requested users.
type Item struct {
	ID           int64   `json:"id"`
	ActivityID   string  `json:"activityid"`
	ItemType     string  `json:"itemtype"`
	ItemNumber   int     `json:"itemnumber"`
	ScaleID      int64   `json:"scaleid"`
	Name         string  `json:"name"`
	ModName      string  `json:"modname,omitempty"`
	Instance     int64   `json:"instance,omitempty"`
	GradeMin     float64 `json:"grademin"`
	GradeMax     float64 `json:"grademax"`
	GradePass    float64 `json:"gradepass"`
	Locked       int64   `json:"locked"`
	Hidden       int64   `json:"hidden"`
	TimeModified int64   `json:"timemodified"`
	Grades       []Grade `json:"grades"`
}

// Grade is one user's grade for an item.
type Grade struct {
	ItemID         int64    `json:"-"`
	UserID         int64    `json:"userid"`
	Grade          *float64 `json:"grade"`
	Locked         int64    `json:"locked"`
	Hidden         int64    `json:"hidden"`
	Overridden     int64    `json:"overridden"`
	Feedback       string   `json:"feedback"`
	FeedbackFormat int      `json:"feedbackformat"`
	UserModified   int64    `json:"usermodified"`
	DateSubmitted  int64    `json:"datesubmitted"`
	DateGraded     int64    `json:"dategraded"`
	StrGrade       string   `json:"str_grade"`
}

// Options narrows the grades of a course.
type Options struct {
	// UserIDs selects whose grades are returned. Empty selects every enrolled user.
	UserIDs []int64
	Dates   listquery.DateRange
}

// hidden reports whether a hidden flag is in effect at now. Values above one
// hide until that timestamp.
func hidden(flag int64, now time.Time) bool {
	return flag == 1 || flag > now.Unix()
}

// IsHidden reports whether the item is hidden at now.
func (i Item) IsHidden(now time.Time) bool {
	return hidden(i.Hidden, now)
}

// IsHidden reports whether the grade is hidden at now.
func (g Grade) IsHidden(now time.Time) bool {
	return hidden(g.Hidden, now)
}

func formatGrade(g *float64) string {
	if g == nil {
		return "-"
	}
	return strconv.FormatFloat(*g, 'f', 2, 64)
}
