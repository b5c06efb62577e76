package lms_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/JaimeStill/aspiredu/internal/lms"
	"github.com/JaimeStill/aspiredu/pkg/listquery"
)

type requester struct {
	caps map[string]string
}

func (r requester) UserID() int64 { return 5 }

func (r requester) Can(capability, scope string) bool {
	path, ok := r.caps[capability]
	return ok && (scope == path || strings.HasPrefix(scope, path+"/"))
}

func TestParseIDList(t *testing.T) {
	tests := []struct {
		list string
		want []int64
	}{
		{"", []int64{}},
		{"2", []int64{2}},
		{"2,5, 9", []int64{2, 5, 9}},
		{"2,,x,7 ", []int64{2, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.list, func(t *testing.T) {
			if got := lms.ParseIDList(tt.list); !slices.Equal(got, tt.want) {
				t.Errorf("ParseIDList(%q) = %v, want %v", tt.list, got, tt.want)
			}
		})
	}
}

func TestSiteAdminIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM mdl_config WHERE name = 'siteadmins'").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("2,41"))
	mock.ExpectQuery("FROM mdl_config WHERE name = 'siteadmins'").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	ids, err := lms.SiteAdminIDs(context.Background(), db)
	if err != nil || !slices.Equal(ids, []int64{2, 41}) {
		t.Errorf("ids = %v, err = %v", ids, err)
	}

	ids, err = lms.SiteAdminIDs(context.Background(), db)
	if err != nil || len(ids) != 0 {
		t.Errorf("missing setting: ids = %v, err = %v", ids, err)
	}
}

func TestCourseContext(t *testing.T) {
	columns := []string{"id", "contextlevel", "instanceid", "path"}

	tests := []struct {
		name      string
		courseID  int64
		wantLevel int
		wantInst  int64
		path      string
	}{
		{"site course", 1, lms.LevelSystem, 0, "/1"},
		{"course", 7, lms.LevelCourse, 7, "/1/3/27"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatal(err)
			}
			defer db.Close()

			mock.ExpectQuery("FROM mdl_context").
				WithArgs(tt.wantLevel, tt.wantInst).
				WillReturnRows(sqlmock.NewRows(columns).AddRow(27, tt.wantLevel, tt.wantInst, tt.path))

			c, err := lms.CourseContext(context.Background(), db, tt.courseID, 1)
			if err != nil {
				t.Fatalf("CourseContext failed: %v", err)
			}
			if c.Path != tt.path {
				t.Errorf("path = %s, want %s", c.Path, tt.path)
			}
		})
	}
}

func TestFindContextNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM mdl_context").
		WillReturnRows(sqlmock.NewRows([]string{"id", "contextlevel", "instanceid", "path"}))

	_, err = lms.FindContext(context.Background(), db, lms.LevelCourse, 404)
	if !errors.Is(err, listquery.ErrNotFound) {
		t.Errorf("error = %v, want not found", err)
	}
}

func TestIsGroupMember(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM mdl_groups_members").
		WithArgs(int64(3), int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"one"}).AddRow(1))
	mock.ExpectQuery("FROM mdl_groups_members").
		WithArgs(int64(4), int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"one"}))

	if ok, err := lms.IsGroupMember(context.Background(), db, 3, 5); err != nil || !ok {
		t.Errorf("member: ok = %v, err = %v", ok, err)
	}
	if ok, err := lms.IsGroupMember(context.Background(), db, 4, 5); err != nil || ok {
		t.Errorf("non-member: ok = %v, err = %v", ok, err)
	}
}

func TestHiddenFrom(t *testing.T) {
	tests := []struct {
		name    string
		visible bool
		req     listquery.Requester
		want    bool
	}{
		{"visible", true, nil, false},
		{"hidden anonymous", false, nil, true},
		{"hidden student", false, requester{}, true},
		{"hidden editor", false, requester{caps: map[string]string{lms.CapViewHiddenActivities: "/1/3"}}, false},
		{"hidden editor elsewhere", false, requester{caps: map[string]string{lms.CapViewHiddenActivities: "/1/4"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cm := lms.CourseModule{Visible: tt.visible, ContextPath: "/1/3/27/90"}
			if got := cm.HiddenFrom(tt.req); got != tt.want {
				t.Errorf("HiddenFrom = %v, want %v", got, tt.want)
			}
		})
	}
}
