package api

import (
	"fmt"

	"github.com/JaimeStill/aspiredu/internal/access"
	"github.com/JaimeStill/aspiredu/internal/assignments"
	"github.com/JaimeStill/aspiredu/internal/courses"
	"github.com/JaimeStill/aspiredu/internal/forums"
	"github.com/JaimeStill/aspiredu/internal/grades"
	"github.com/JaimeStill/aspiredu/internal/logs"
	"github.com/JaimeStill/aspiredu/internal/lti"
	"github.com/JaimeStill/aspiredu/internal/settings"
	"github.com/JaimeStill/aspiredu/internal/users"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Access      access.System
	Settings    settings.System
	Forums      forums.System
	Grades      grades.System
	Assignments assignments.System
	Courses     courses.System
	Users       users.System
	Logs        logs.System
	LTI         lti.System
}

// NewDomain creates all domain systems from the API runtime. Every list
// endpoint pages with the settings system, which applies maxrecordsperpage.
func NewDomain(runtime *Runtime) (*Domain, error) {
	db := runtime.Database.Connection()
	cfg := runtime.Config
	site := cfg.API.SiteCourseID

	accessSystem := access.New(db, runtime.Logger)
	settingsSystem := settings.New(db, runtime.Logger, cfg.API.Pagination, site, cfg.Version)

	keys, err := lti.LoadKeys(&cfg.LTI)
	if err != nil {
		return nil, err
	}

	ltiSystem, err := lti.New(db, runtime.Logger, settingsSystem, accessSystem, &cfg.LTI, keys, site)
	if err != nil {
		return nil, fmt.Errorf("lti init failed: %w", err)
	}

	return &Domain{
		Access:      accessSystem,
		Settings:    settingsSystem,
		Forums:      forums.New(db, runtime.Logger, settingsSystem),
		Grades:      grades.New(db, runtime.Logger, settingsSystem),
		Assignments: assignments.New(db, runtime.Logger, settingsSystem),
		Courses:     courses.New(db, runtime.Logger, settingsSystem, site),
		Users:       users.New(db, runtime.Logger, settingsSystem),
		Logs:        logs.New(db, runtime.Logger, settingsSystem, site),
		LTI:         ltiSystem,
	}, nil
}
