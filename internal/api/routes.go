package api

import (
	"github.com/JaimeStill/aspiredu/pkg/routes"
)

func apiRoutes(domain *Domain) []routes.Group {
	return []routes.Group{
		domain.Settings.Handler().Routes(),
		domain.Forums.Handler().Routes(),
		domain.Grades.Handler().Routes(),
		domain.Assignments.Handler().Routes(),
		domain.Courses.Handler().Routes(),
		domain.Users.Handler().Routes(),
		domain.Logs.Handler().Routes(),
	}
}
