package users

import (
	"strings"

	"github.com/JaimeStill/aspiredu/pkg/listquery"
	"github.com/JaimeStill/aspiredu/pkg/query"
	"github.com/JaimeStill/aspiredu/pkg/repository"
)

var projection = query.
	NewProjectionMap("mdl_user", "u").
	Project("id", "id").
	Project("username", "username").
	Project("firstname", "firstname").
	Project("lastname", "lastname").
	Project("email", "email").
	Project("COALESCE(u.idnumber, '')", "idnumber").
	Project("COALESCE(u.department, '')", "department").
	Project("COALESCE(u.institution, '')", "institution").
	Project("COALESCE(u.city, '')", "city").
	Project("COALESCE(u.country, '')", "country").
	Project("lang", "lang").
	Project("timezone", "timezone").
	Project("auth", "auth").
	Project("suspended", "suspended").
	Project("confirmed", "confirmed").
	Project("firstaccess", "firstaccess").
	Project("lastaccess", "lastaccess")

var defaultSort = query.SortField{Field: "id"}

const roleSQL = `SELECT id FROM mdl_role WHERE shortname = $1`

// holdsAnyRole builds an EXISTS condition over role assignments with one
// placeholder per role id.
func holdsAnyRole(n int) string {
	placeholders := strings.TrimSuffix(strings.Repeat("$%d, ", n), ", ")
	return "EXISTS (SELECT 1 FROM mdl_role_assignments ra WHERE ra.userid = u.id AND ra.roleid IN (" + placeholders + "))"
}

const holdsRoleInContext = "EXISTS (SELECT 1 FROM mdl_role_assignments ra WHERE ra.userid = u.id AND ra.roleid = $%d AND ra.contextid = $%d)"

func scanUser(s repository.Scanner) (User, error) {
	var u User
	var suspended, confirmed int
	err := s.Scan(
		&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.IDNumber,
		&u.Department, &u.Institution, &u.City, &u.Country, &u.Lang, &u.Timezone,
		&u.Auth, &suspended, &confirmed, &u.FirstAccess, &u.LastAccess,
	)
	u.FullName = strings.TrimSpace(u.FirstName + " " + u.LastName)
	u.Suspended = suspended == 1
	u.Confirmed = confirmed == 1
	return u, err
}

// Sorter orders users by id (default), lastname or firstname.
func Sorter() *listquery.Sorter[User] {
	return listquery.
		NewSorter("id", listquery.By(func(u User) int64 { return u.ID })).
		Field("lastname", listquery.By(func(u User) string { return u.LastName })).
		Field("firstname", listquery.By(func(u User) string { return u.FirstName }))
}
