// Package lms holds the LMS schema vocabulary shared by the domain packages:
// context levels, capability names, and lookups for contexts, course modules,
// and enrolments.
package lms

// Context levels.
const (
	LevelSystem   = 10
	LevelUser     = 30
	LevelCategory = 40
	LevelCourse   = 50
	LevelModule   = 70
	LevelBlock    = 80
)

// SystemPath is the context path of the system context.
const SystemPath = "/1"

// Capabilities checked by the service.
const (
	CapSiteConfig            = "moodle/site:config"
	CapSiteConfigView        = "moodle/site:configview"
	CapViewFullNames         = "moodle/site:viewfullnames"
	CapAccessAllGroups       = "moodle/site:accessallgroups"
	CapCourseView            = "moodle/course:view"
	CapCourseUpdate          = "moodle/course:update"
	CapViewHiddenActivities  = "moodle/course:viewhiddenactivities"
	CapManageActivities      = "moodle/course:manageactivities"
	CapForumViewDiscussion   = "mod/forum:viewdiscussion"
	CapForumReadPrivate      = "mod/forum:readprivatereplies"
	CapForumViewQandA        = "mod/forum:viewqandawithoutposting"
	CapAssignView            = "mod/assign:view"
	CapAssignGrade           = "mod/assign:grade"
	CapGradeView             = "moodle/grade:view"
	CapGradeViewAll          = "moodle/grade:viewall"
	CapGradeViewHidden       = "moodle/grade:viewhidden"
	CapReportLogView         = "report/log:view"
	CapViewDropoutDetective  = "local/aspiredu:viewdropoutdetective"
	CapViewInstructorInsight = "local/aspiredu:viewinstructorinsight"
)

// Group modes of a course module.
const (
	NoGroups       = 0
	SeparateGroups = 1
	VisibleGroups  = 2
)
