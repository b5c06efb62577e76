package courses

import (
	"regexp"

	"github.com/JaimeStill/aspiredu/pkg/listquery"
	"github.com/JaimeStill/aspiredu/pkg/query"
	"github.com/JaimeStill/aspiredu/pkg/repository"
)

var courseProjection = query.
	NewProjectionMap("mdl_course", "c").
	Project("id", "id").
	Project("shortname", "shortname").
	Project("category", "categoryid").
	Project("fullname", "fullname").
	Project("COALESCE(c.idnumber, '')", "idnumber").
	Project("COALESCE(c.summary, '')", "summary").
	Project("summaryformat", "summaryformat").
	Project("format", "format").
	Project("showgrades", "showgrades").
	Project("startdate", "startdate").
	Project("enddate", "enddate").
	Project("visible", "visible").
	Project("groupmode", "groupmode").
	Project("groupmodeforce", "groupmodeforce").
	Project("enablecompletion", "enablecompletion").
	Project("COALESCE(c.lang, '')", "lang").
	Project("timecreated", "timecreated").
	Project("timemodified", "timemodified")

var defaultSort = query.SortField{Field: "id"}

var moduleName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func instanceProjection(modname string) *query.ProjectionMap {
	return query.
		NewProjectionMap("mdl_"+modname, "i").
		Project("id", "id").
		Project("name", "name")
}

func scanCourse(s repository.Scanner) (Course, error) {
	var c Course
	err := s.Scan(
		&c.ID, &c.ShortName, &c.CategoryID, &c.FullName, &c.IDNumber, &c.Summary,
		&c.SummaryFormat, &c.Format, &c.ShowGrades, &c.StartDate, &c.EndDate,
		&c.Visible, &c.GroupMode, &c.GroupModeForce, &c.EnableCompletion, &c.Lang,
		&c.TimeCreated, &c.TimeModified,
	)
	c.DisplayName = c.FullName
	return c, err
}

type instanceName struct {
	id   int64
	name string
}

func scanInstanceName(s repository.Scanner) (instanceName, error) {
	var n instanceName
	err := s.Scan(&n.id, &n.name)
	return n, err
}

// CourseSorter orders courses by id (default), fullname, shortname or startdate.
func CourseSorter() *listquery.Sorter[Course] {
	return listquery.
		NewSorter("id", listquery.By(func(c Course) int64 { return c.ID })).
		Field("fullname", listquery.By(func(c Course) string { return c.FullName })).
		Field("shortname", listquery.By(func(c Course) string { return c.ShortName })).
		Field("startdate", listquery.By(func(c Course) int64 { return c.StartDate }))
}

// ContentSorter orders course contents by id (default), name, section or added.
func ContentSorter() *listquery.Sorter[Content] {
	return listquery.
		NewSorter("id", listquery.By(func(c Content) int64 { return c.ID })).
		Field("name", listquery.By(func(c Content) string { return c.Name })).
		Field("section", listquery.By(func(c Content) int { return c.Section })).
		Field("added", listquery.By(func(c Content) int64 { return c.Added }))
}

// ContentFilter drops modules hidden from the requester.
var ContentFilter = listquery.FilterFunc[Content](func(c Content, r listquery.Requester) listquery.Decision {
	if c.module.HiddenFrom(r) {
		return listquery.Deny(nil)
	}
	return listquery.Allow()
})
