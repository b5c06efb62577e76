package courses

import (
	"strings"

	"github.com/JaimeStill/aspiredu/internal/lms"
	"github.com/JaimeStill/aspiredu/pkg/listquery"
)

// Course is a course record as reported to the analytics suite.
type Course struct {
	ID               int64  `json:"id"`
	ShortName        string `json:"shortname"`
	CategoryID       int64  `json:"categoryid"`
	FullName         string `json:"fullname"`
	DisplayName      string `json:"displayname"`
	IDNumber         string `json:"idnumber"`
	Summary          string `json:"summary"`
	SummaryFormat    int    `json:"summaryformat"`
	Format           string `json:"format"`
	ShowGrades       int    `json:"showgrades"`
	StartDate        int64  `json:"startdate"`
	EndDate          int64  `json:"enddate"`
	Visible          int    `json:"visible"`
	GroupMode        int    `json:"groupmode"`
	GroupModeForce   int    `json:"groupmodeforce"`
	EnableCompletion int    `json:"enablecompletion"`
	Lang             string `json:"lang"`
	TimeCreated      int64  `json:"timecreated"`
	TimeModified     int64  `json:"timemodified"`
}

// Content is one module of a course's sections, flattened.
type Content struct {
	ID                 int64  `json:"id"`
	ModName            string `json:"modname"`
	Name               string `json:"name"`
	Instance           int64  `json:"instance"`
	ModPlural          string `json:"modplural"`
	Section            int    `json:"section"`
	Added              int64  `json:"added"`
	CompletionExpected bool   `json:"completion_expected"`

	module lms.CourseModule
}

// Module describes a course module looked up by its activity instance.
// The optional fields are only reported to requesters who may manage the activity.
type Module struct {
	ID                 int64   `json:"id"`
	Course             int64   `json:"course"`
	Module             int64   `json:"module"`
	Name               string  `json:"name"`
	ModName            string  `json:"modname"`
	Instance           int64   `json:"instance"`
	Section            int64   `json:"section"`
	SectionNum         int     `json:"sectionnum"`
	GroupMode          int     `json:"groupmode"`
	Completion         int     `json:"completion"`
	IDNumber           *string `json:"idnumber,omitempty"`
	Added              *int64  `json:"added,omitempty"`
	Visible            *int    `json:"visible,omitempty"`
	VisibleOld         *int    `json:"visibleold,omitempty"`
	CompletionExpected *int64  `json:"completionexpected,omitempty"`
}

// ModuleResult wraps a Module the way list results carry warnings.
type ModuleResult struct {
	CM       Module              `json:"cm"`
	Warnings []listquery.Warning `json:"warnings"`
}

// CourseOptions narrows the course list.
type CourseOptions struct {
	IDs []int64
}

var plurals = map[string]string{
	"assign":      "Assignments",
	"book":        "Books",
	"chat":        "Chats",
	"choice":      "Choices",
	"data":        "Databases",
	"feedback":    "Feedback",
	"folder":      "Folders",
	"forum":       "Forums",
	"glossary":    "Glossaries",
	"h5pactivity": "H5P",
	"label":       "Text and media areas",
	"lesson":      "Lessons",
	"lti":         "External tools",
	"page":        "Pages",
	"quiz":        "Quizzes",
	"resource":    "Files",
	"scorm":       "SCORM packages",
	"survey":      "Surveys",
	"url":         "URLs",
	"wiki":        "Wikis",
	"workshop":    "Workshops",
}

// ModPlural returns the plural display name of a module type.
func ModPlural(modname string) string {
	if p, ok := plurals[modname]; ok {
		return p
	}
	if modname == "" {
		return ""
	}
	return strings.ToUpper(modname[:1]) + modname[1:] + "s"
}

func newModule(cm lms.CourseModule, name string, full bool) Module {
	m := Module{
		ID:         cm.ID,
		Course:     cm.Course,
		Module:     cm.Module,
		Name:       name,
		ModName:    cm.ModName,
		Instance:   cm.Instance,
		Section:    cm.Section,
		SectionNum: cm.SectionNum,
		GroupMode:  cm.GroupMode,
		Completion: cm.Completion,
	}
	if !full {
		return m
	}

	visible, visibleOld := flag(cm.Visible), flag(cm.VisibleOld)
	m.IDNumber = &cm.IDNumber
	m.Added = &cm.Added
	m.Visible = &visible
	m.VisibleOld = &visibleOld
	m.CompletionExpected = &cm.CompletionExpected
	return m
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
