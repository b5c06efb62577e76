package lms

import (
	"context"
	"fmt"

	"github.com/JaimeStill/aspiredu/pkg/listquery"
	"github.com/JaimeStill/aspiredu/pkg/repository"
)

// CourseModule is an activity placed in a course section.
type CourseModule struct {
	ID                 int64  `json:"id"`
	Course             int64  `json:"course"`
	Module             int64  `json:"module"`
	ModName            string `json:"modname"`
	Instance           int64  `json:"instance"`
	Section            int64  `json:"section"`
	SectionNum         int    `json:"sectionnum"`
	IDNumber           string `json:"idnumber"`
	Added              int64  `json:"added"`
	Visible            bool   `json:"visible"`
	VisibleOld         bool   `json:"visibleold"`
	GroupMode          int    `json:"groupmode"`
	Completion         int    `json:"completion"`
	CompletionExpected int64  `json:"completionexpected"`
	ContextPath        string `json:"-"`
}

const courseModuleColumns = `
	cm.id, cm.course, cm.module, m.name, cm.instance, cm.section, COALESCE(cs.section, 0),
	COALESCE(cm.idnumber, ''), cm.added, cm.visible = 1, cm.visibleold = 1, cm.groupmode,
	cm.completion, cm.completionexpected, ctx.path`

const courseModuleFrom = `
	FROM mdl_course_modules cm
	JOIN mdl_modules m ON m.id = cm.module
	JOIN mdl_context ctx ON ctx.contextlevel = 70 AND ctx.instanceid = cm.id
	LEFT JOIN mdl_course_sections cs ON cs.id = cm.section`

// ScanCourseModule scans the columns selected by CourseModuleColumns.
func ScanCourseModule(s repository.Scanner) (CourseModule, error) {
	var cm CourseModule
	err := s.Scan(
		&cm.ID, &cm.Course, &cm.Module, &cm.ModName, &cm.Instance, &cm.Section, &cm.SectionNum,
		&cm.IDNumber, &cm.Added, &cm.Visible, &cm.VisibleOld, &cm.GroupMode,
		&cm.Completion, &cm.CompletionExpected, &cm.ContextPath,
	)
	return cm, err
}

// CourseModuleSelect returns the SELECT and FROM clauses for course modules
// joined with their module name, section number, and context path.
func CourseModuleSelect() string {
	return "SELECT " + courseModuleColumns + courseModuleFrom
}

// FindCourseModule returns the course module of the modname activity instance.
func FindCourseModule(ctx context.Context, q repository.Querier, modname string, instance int64) (CourseModule, error) {
	sql := CourseModuleSelect() + `
	WHERE m.name = $1 AND cm.instance = $2 AND cm.deletioninprogress = 0`

	cm, err := repository.QueryOne(ctx, q, sql, []any{modname, instance}, ScanCourseModule)
	if err != nil {
		return CourseModule{}, repository.MapError(err, listquery.NotFound("course module", fmt.Sprintf("%s/%d", modname, instance)))
	}
	return cm, nil
}

// ListCourseModules returns the live modules of courseID, optionally limited to one module type.
func ListCourseModules(ctx context.Context, q repository.Querier, courseID int64, modname string) ([]CourseModule, error) {
	sql := CourseModuleSelect() + `
	WHERE cm.course = $1 AND cm.deletioninprogress = 0 AND ($2 = '' OR m.name = $2)
	ORDER BY cs.section, cm.id`

	return repository.QueryMany(ctx, q, sql, []any{courseID, modname}, ScanCourseModule)
}

// HiddenFrom reports whether the module is hidden from a requester lacking
// moodle/course:viewhiddenactivities in the module context.
func (cm CourseModule) HiddenFrom(r listquery.Requester) bool {
	return !cm.Visible && (r == nil || !r.Can(CapViewHiddenActivities, cm.ContextPath))
}
