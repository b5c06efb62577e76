// Package settings exposes the plugin settings stored by the LMS and decides
// where the product links are shown.
package settings

import (
	"strconv"
	"strings"
)

// Plugin is the LMS component the settings are stored under.
const Plugin = "local_aspiredu"

// Settings is the persisted plugin configuration.
type Settings struct {
	DropoutDetectiveURL    string   `json:"dropoutdetectiveurl"`
	InstructorInsightURL   string   `json:"instructorinsighturl"`
	Key                    string   `json:"key"`
	Secret                 string   `json:"-"`
	DropoutDetectiveLinks  LinkMode `json:"dropoutdetectivelinks"`
	InstructorInsightLinks LinkMode `json:"instructorinsightlinks"`
	ShowCourseSettings     bool     `json:"showcoursesettings"`
	Instance               string   `json:"instance"`
	MaxRecordsPerPage      int      `json:"maxrecordsperpage"`
	Version                string   `json:"version"`
}

// Defaults returns the settings in effect before an administrator saves any.
func Defaults() Settings {
	return Settings{
		DropoutDetectiveLinks:  AdminAccountCourseInstructorCourse,
		InstructorInsightLinks: AdminAccountCourseInstructorCourse,
		ShowCourseSettings:     true,
	}
}

func (s *Settings) set(name, value string) {
	value = strings.TrimSpace(value)
	switch name {
	case "dropoutdetectiveurl":
		s.DropoutDetectiveURL = value
	case "instructorinsighturl":
		s.InstructorInsightURL = value
	case "key":
		s.Key = value
	case "secret":
		s.Secret = value
	case "dropoutdetectivelinks":
		s.DropoutDetectiveLinks = parseMode(value, s.DropoutDetectiveLinks)
	case "instructorinsightlinks":
		s.InstructorInsightLinks = parseMode(value, s.InstructorInsightLinks)
	case "showcoursesettings":
		s.ShowCourseSettings = value != "0" && value != ""
	case "instance":
		s.Instance = value
	case "maxrecordsperpage":
		if n, err := strconv.Atoi(value); err == nil {
			s.MaxRecordsPerPage = n
		}
	case "version":
		s.Version = value
	}
}

// Unparseable values fall back to def. Out of range values are kept so
// that Visible reports them.
func parseMode(value string, def LinkMode) LinkMode {
	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return LinkMode(n)
}

// Product returns the tool URL configured for product, "dd" or "ii".
func (s Settings) Product(product string) (string, bool) {
	switch product {
	case "dd":
		return s.DropoutDetectiveURL, true
	case "ii":
		return s.InstructorInsightURL, true
	}
	return "", false
}
