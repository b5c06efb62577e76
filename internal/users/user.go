package users

import "github.com/JaimeStill/aspiredu/pkg/listquery"

// User is the public description of an LMS account.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	FirstName   string `json:"firstname"`
	LastName    string `json:"lastname"`
	FullName    string `json:"fullname"`
	Email       string `json:"email"`
	IDNumber    string `json:"idnumber"`
	Department  string `json:"department"`
	Institution string `json:"institution"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Lang        string `json:"lang"`
	Timezone    string `json:"timezone"`
	Auth        string `json:"auth"`
	Suspended   bool   `json:"suspended"`
	Confirmed   bool   `json:"confirmed"`
	FirstAccess int64  `json:"firstaccess"`
	LastAccess  int64  `json:"lastaccess"`
}

// Result lists users without pagination.
type Result struct {
	Users    []User              `json:"users"`
	Warnings []listquery.Warning `json:"warnings"`
}

// RoleTarget identifies the role and context of a role holder lookup.
type RoleTarget struct {
	ShortName  string
	Level      int
	InstanceID int64
}

func newResult(users []User) *Result {
	return &Result{Users: users, Warnings: []listquery.Warning{}}
}
