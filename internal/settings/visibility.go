package settings

import (
	"strconv"

	"github.com/JaimeStill/aspiredu/internal/lms"
	"github.com/JaimeStill/aspiredu/pkg/listquery"
)

// LinkMode selects who sees a product link and where.
type LinkMode int

const (
	Disabled LinkMode = iota
	AdminAccountCourseInstructorCourse
	AdminAccountInstructorCourse
	AdminCourseInstructorCourse
	AdminAccountCourse
	AdminAccount
	InstructorCourse
)

var linkModeNames = [...]string{
	Disabled:                           "disabled",
	AdminAccountCourseInstructorCourse: "adminacccourseinstcourse",
	AdminAccountInstructorCourse:       "adminacccinstcourse",
	AdminCourseInstructorCourse:        "admincourseinstcourse",
	AdminAccountCourse:                 "adminacccourse",
	AdminAccount:                       "adminacc",
	InstructorCourse:                   "instcourse",
}

func (m LinkMode) String() string {
	if m.Validate() != nil {
		return strconv.Itoa(int(m))
	}
	return linkModeNames[m]
}

// Validate rejects values outside the enumeration.
func (m LinkMode) Validate() error {
	if m < Disabled || m > InstructorCourse {
		allowed := make([]string, len(linkModeNames))
		for i := range linkModeNames {
			allowed[i] = strconv.Itoa(i)
		}
		return listquery.Invalid("links", strconv.Itoa(int(m)), allowed...)
	}
	return nil
}

// Scope is where a link would be rendered.
type Scope int

const (
	NoScope Scope = iota
	CourseScope
	SiteScope
)

func (s Scope) String() string {
	switch s {
	case CourseScope:
		return "course"
	case SiteScope:
		return "site"
	}
	return "none"
}

func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ScopeFor derives the scope of a context. The system context and the site
// home are site scope, course level and below are course scope.
func ScopeFor(level int, siteHome bool) Scope {
	switch {
	case level == lms.LevelSystem || siteHome:
		return SiteScope
	case level >= lms.LevelCourse:
		return CourseScope
	}
	return NoScope
}

type row struct {
	courseAdmin      bool
	courseInstructor bool
	siteAdmin        bool
	siteInstructor   bool
}

var visibility = [...]row{
	Disabled:                           {false, false, false, false},
	AdminAccountCourseInstructorCourse: {true, true, true, false},
	AdminAccountInstructorCourse:       {false, true, true, false},
	AdminCourseInstructorCourse:        {true, true, false, false},
	AdminAccountCourse:                 {true, false, true, false},
	AdminAccount:                       {false, false, true, false},
	InstructorCourse:                   {false, true, false, false},
}

// Visible reports whether a link configured with mode is shown at scope to
// an admin or a non-admin user.
func Visible(scope Scope, admin bool, mode LinkMode) (bool, error) {
	if err := mode.Validate(); err != nil {
		return false, err
	}

	r := visibility[mode]
	switch {
	case scope == CourseScope && admin:
		return r.courseAdmin, nil
	case scope == CourseScope:
		return r.courseInstructor, nil
	case scope == SiteScope && admin:
		return r.siteAdmin, nil
	case scope == SiteScope:
		return r.siteInstructor, nil
	}
	return false, nil
}
