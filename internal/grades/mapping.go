package grades

import (
	"strconv"
	"time"

	"github.com/JaimeStill/aspiredu/internal/lms"
	"github.com/JaimeStill/aspiredu/pkg/listquery"
	"github.com/JaimeStill/aspiredu/pkg/query"
	"github.com/JaimeStill/aspiredu/pkg/repository"
)

var itemProjection = query.
	NewProjectionMap("mdl_grade_items", "gi").
	Join("LEFT JOIN mdl_modules m ON m.name = gi.itemmodule").
	Join("LEFT JOIN mdl_course_modules cm ON cm.module = m.id AND cm.instance = gi.iteminstance").
	Project("id", "id").
	Project("itemtype", "itemtype").
	Project("COALESCE(gi.itemmodule, '')", "modname").
	Project("COALESCE(gi.iteminstance, 0)", "instance").
	Project("itemnumber", "itemnumber").
	Project("COALESCE(gi.scaleid, 0)", "scaleid").
	Project("COALESCE(gi.itemname, '')", "name").
	Project("grademin", "grademin").
	Project("grademax", "grademax").
	Project("gradepass", "gradepass").
	Project("locked", "locked").
	Project("hidden", "hidden").
	Project("COALESCE(gi.timemodified, 0)", "timemodified").
	Project("COALESCE(cm.id, 0)", "cmid")

var gradeProjection = query.
	NewProjectionMap("mdl_grade_grades", "gg").
	Join("JOIN mdl_grade_items gi ON gi.id = gg.itemid").
	Project("itemid", "itemid").
	Project("userid", "userid").
	Project("finalgrade", "grade").
	Project("locked", "locked").
	Project("hidden", "hidden").
	Project("overridden", "overridden").
	Project("COALESCE(gg.feedback, '')", "feedback").
	Project("COALESCE(gg.feedbackformat, 0)", "feedbackformat").
	Project("COALESCE(gg.usermodified, 0)", "usermodified").
	Project("COALESCE(gg.timecreated, 0)", "datesubmitted").
	Project("COALESCE(gg.timemodified, 0)", "dategraded")

var (
	itemSort  = query.SortField{Field: "id"}
	gradeSort = query.SortField{Field: "userid"}
)

const courseSQL = `SELECT showgrades FROM mdl_course WHERE id = $1`

func scanItem(s repository.Scanner) (Item, error) {
	var i Item
	var cmid int64
	err := s.Scan(
		&i.ID, &i.ItemType, &i.ModName, &i.Instance, &i.ItemNumber, &i.ScaleID, &i.Name,
		&i.GradeMin, &i.GradeMax, &i.GradePass, &i.Locked, &i.Hidden, &i.TimeModified,
		&cmid,
	)
	if i.ItemType == "course" {
		i.ActivityID = "course"
	} else {
		i.ActivityID = strconv.FormatInt(cmid, 10)
	}
	i.Grades = []Grade{}
	return i, err
}

func scanGrade(s repository.Scanner) (Grade, error) {
	var g Grade
	err := s.Scan(
		&g.ItemID, &g.UserID, &g.Grade, &g.Locked, &g.Hidden, &g.Overridden,
		&g.Feedback, &g.FeedbackFormat, &g.UserModified, &g.DateSubmitted, &g.DateGraded,
	)
	g.StrGrade = formatGrade(g.Grade)
	return g, err
}

// Sorter orders grade items by id (default), itemnumber, name or timemodified.
func Sorter() *listquery.Sorter[Item] {
	return listquery.
		NewSorter("id", listquery.By(func(i Item) int64 { return i.ID })).
		Field("itemnumber", listquery.By(func(i Item) int { return i.ItemNumber })).
		Field("name", listquery.By(func(i Item) string { return i.Name })).
		Field("timemodified", listquery.By(func(i Item) int64 { return i.TimeModified }))
}

// ItemFilter excludes hidden grade items from requesters lacking
// moodle/grade:viewhidden in the course.
type ItemFilter struct {
	CoursePath string
	Now        time.Time
}

func (f ItemFilter) Include(i Item, r listquery.Requester) listquery.Decision {
	if i.IsHidden(f.Now) && !r.Can(lms.CapGradeViewHidden, f.CoursePath) {
		return listquery.Deny(&listquery.Warning{
			Item:        "gradeitem",
			ItemID:      i.ID,
			WarningCode: WarningHiddenItem,
			Message:     "Grade item is hidden",
		})
	}
	return listquery.Allow()
}
