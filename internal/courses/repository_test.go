package courses_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaimeStill/aspiredu/internal/access"
	"github.com/JaimeStill/aspiredu/internal/courses"
	"github.com/JaimeStill/aspiredu/internal/lms"
	"github.com/JaimeStill/aspiredu/pkg/listquery"
	"github.com/JaimeStill/aspiredu/pkg/pagination"
)

var cfg = pagination.Config{DefaultPageSize: 100, MaxPageSize: 1000}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSystem(t *testing.T) (courses.System, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return courses.New(db, discard(), pagination.Static(cfg), 1), mock
}

var courseColumns = []string{
	"id", "shortname", "category", "fullname", "idnumber", "summary", "summaryformat", "format",
	"showgrades", "startdate", "enddate", "visible", "groupmode", "groupmodeforce",
	"enablecompletion", "lang", "timecreated", "timemodified",
}

var moduleColumns = []string{
	"id", "course", "module", "modname", "instance", "section", "sectionnum", "idnumber", "added",
	"visible", "visibleold", "groupmode", "completion", "completionexpected", "path",
}

func course(id int64, short, full string, start int64) []driver.Value {
	return []driver.Value{id, short, 1, full, "", "", 1, "topics", 1, start, 0, 1, 0, 0, 1, "", 10, 20}
}

func expectCourseContext(mock sqlmock.Sqlmock, id int64, path string) {
	mock.ExpectQuery("FROM mdl_context").
		WithArgs(lms.LevelCourse, id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "contextlevel", "instanceid", "path"}).
			AddRow(20+id, lms.LevelCourse, id, path))
}

func contentModules() *sqlmock.Rows {
	return sqlmock.NewRows(moduleColumns).
		AddRow(90, 7, 1, "assign", 1, 10, 1, "", 100, true, true, 0, 1, 500, "/1/3/90").
		AddRow(91, 7, 2, "forum", 2, 10, 1, "", 200, true, true, 0, 0, 0, "/1/3/91").
		AddRow(92, 7, 1, "assign", 3, 11, 2, "", 300, false, true, 0, 0, 0, "/1/3/92").
		AddRow(93, 7, 3, "quiz", 4, 11, 2, "", 400, true, true, 0, 2, 0, "/1/3/93")
}

func viewer(extra ...access.Grant) *access.Requester {
	grants := append([]access.Grant{{Path: "/1/3", Capability: lms.CapCourseView}}, extra...)
	return access.NewRequester(5, false, grants...)
}

func TestCourses(t *testing.T) {
	sys, mock := newSystem(t)
	mock.ExpectQuery("FROM mdl_course c").
		WithArgs(int64(2), int64(3), int64(1)).
		WillReturnRows(sqlmock.NewRows(courseColumns).
			AddRow(course(2, "BIO", "Biology", 300)...).
			AddRow(course(3, "ART", "Art History", 100)...))

	requester := access.NewRequester(5, false, access.Grant{Path: lms.SystemPath, Capability: lms.CapCourseView})
	q := listquery.NewQuery(10)
	q.SortField = "startdate"

	result, err := sys.Courses(context.Background(), requester, courses.CourseOptions{IDs: []int64{2, 3}}, q)
	if err != nil {
		t.Fatalf("Courses failed: %v", err)
	}

	if len(result.Items) != 2 || result.Items[0].ID != 3 {
		t.Fatalf("items = %+v, want course 3 first", result.Items)
	}
	if got := result.Items[0].DisplayName; got != "Art History" {
		t.Errorf("displayname = %q", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCoursesForbidden(t *testing.T) {
	sys, mock := newSystem(t)

	_, err := sys.Courses(context.Background(), viewer(), courses.CourseOptions{}, listquery.NewQuery(10))
	if !errors.Is(err, listquery.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func expectContents(mock sqlmock.Sqlmock) {
	expectCourseContext(mock, 7, "/1/3")
	mock.ExpectQuery("FROM mdl_course_modules cm").
		WithArgs(int64(7), "").
		WillReturnRows(contentModules())
}

func TestContents(t *testing.T) {
	sys, mock := newSystem(t)
	expectContents(mock)
	mock.ExpectQuery("FROM mdl_assign i").
		WithArgs(int64(1), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Essay").AddRow(3, "Draft"))
	mock.ExpectQuery("FROM mdl_forum i").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "General"))
	mock.ExpectQuery("FROM mdl_quiz i").
		WillReturnError(&pgconn.PgError{Code: "42P01", Message: `relation "mdl_quiz" does not exist`})

	result, err := sys.Contents(context.Background(), viewer(), 7, listquery.DateRange{}, listquery.NewQuery(10))
	if err != nil {
		t.Fatalf("Contents failed: %v", err)
	}

	want := []courses.Content{
		{ID: 90, ModName: "assign", Name: "Essay", Instance: 1, ModPlural: "Assignments", Section: 1, Added: 100, CompletionExpected: true},
		{ID: 91, ModName: "forum", Name: "General", Instance: 2, ModPlural: "Forums", Section: 1, Added: 200},
		{ID: 93, ModName: "quiz", Instance: 4, ModPlural: "Quizzes", Section: 2, Added: 400, CompletionExpected: true},
	}
	if len(result.Items) != len(want) {
		t.Fatalf("items = %+v, want %d", result.Items, len(want))
	}
	for i, got := range result.Items {
		w := want[i]
		if got.ID != w.ID || got.Name != w.Name || got.ModPlural != w.ModPlural ||
			got.Section != w.Section || got.CompletionExpected != w.CompletionExpected {
			t.Errorf("item %d = %+v, want %+v", i, got, w)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestContentsHiddenAndDates(t *testing.T) {
	sys, mock := newSystem(t)
	expectContents(mock)
	mock.ExpectQuery("FROM mdl_assign i").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "Draft"))
	mock.ExpectQuery("FROM mdl_quiz i").
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(4, "Midterm"))

	requester := viewer(access.Grant{Path: "/1/3", Capability: lms.CapViewHiddenActivities})
	q := listquery.Query{Page: 1, PageSize: 10, SortField: "name", Direction: listquery.Ascending}

	result, err := sys.Contents(context.Background(), requester, 7, listquery.DateRange{Start: 250}, q)
	if err != nil {
		t.Fatalf("Contents failed: %v", err)
	}

	if len(result.Items) != 2 || result.Items[0].Name != "Draft" || result.Items[1].Name != "Midterm" {
		t.Errorf("items = %+v, want Draft then Midterm", result.Items)
	}
}

func TestContentsErrors(t *testing.T) {
	t.Run("missing course", func(t *testing.T) {
		sys, mock := newSystem(t)
		mock.ExpectQuery("FROM mdl_context").
			WithArgs(lms.LevelCourse, int64(404)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "contextlevel", "instanceid", "path"}))

		_, err := sys.Contents(context.Background(), viewer(), 404, listquery.DateRange{}, listquery.NewQuery(10))
		if !errors.Is(err, listquery.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("no view capability", func(t *testing.T) {
		sys, mock := newSystem(t)
		expectCourseContext(mock, 8, "/1/4")

		_, err := sys.Contents(context.Background(), viewer(), 8, listquery.DateRange{}, listquery.NewQuery(10))
		if !errors.Is(err, listquery.ErrUnauthorized) {
			t.Errorf("error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("bad sort field", func(t *testing.T) {
		sys, _ := newSystem(t)
		q := listquery.NewQuery(10)
		q.SortField = "modname"

		_, err := sys.Contents(context.Background(), viewer(), 7, listquery.DateRange{}, q)
		if !errors.Is(err, listquery.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})
}

func expectModule(mock sqlmock.Sqlmock, visible bool) {
	mock.ExpectQuery("FROM mdl_course_modules cm").
		WithArgs("forum", int64(2)).
		WillReturnRows(sqlmock.NewRows(moduleColumns).
			AddRow(91, 7, 2, "forum", 2, 10, 1, "F-1", 200, visible, true, 1, 0, 0, "/1/3/91"))
}

func TestModuleFromInstance(t *testing.T) {
	tests := []struct {
		name      string
		requester *access.Requester
		wantFull  bool
	}{
		{"limited", viewer(), false},
		{"full", viewer(access.Grant{Path: "/1/3", Capability: lms.CapManageActivities}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, mock := newSystem(t)
			expectModule(mock, true)
			mock.ExpectQuery("FROM mdl_forum i").
				WithArgs(int64(2)).
				WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "General"))

			result, err := sys.ModuleFromInstance(context.Background(), tt.requester, "forum", 2)
			if err != nil {
				t.Fatalf("ModuleFromInstance failed: %v", err)
			}

			cm := result.CM
			if cm.ID != 91 || cm.Name != "General" || cm.GroupMode != 1 {
				t.Errorf("cm = %+v", cm)
			}
			if got := cm.IDNumber != nil; got != tt.wantFull {
				t.Errorf("full info = %v, want %v", got, tt.wantFull)
			}
			if tt.wantFull && *cm.IDNumber != "F-1" {
				t.Errorf("idnumber = %q", *cm.IDNumber)
			}
		})
	}
}

func TestModuleFromInstanceErrors(t *testing.T) {
	t.Run("bad module name", func(t *testing.T) {
		sys, _ := newSystem(t)
		_, err := sys.ModuleFromInstance(context.Background(), viewer(), "forum; drop", 2)
		if !errors.Is(err, courses.ErrModuleName) {
			t.Errorf("error = %v, want ErrModuleName", err)
		}
	})

	t.Run("missing instance", func(t *testing.T) {
		sys, mock := newSystem(t)
		mock.ExpectQuery("FROM mdl_course_modules cm").
			WithArgs("forum", int64(404)).
			WillReturnRows(sqlmock.NewRows(moduleColumns))

		_, err := sys.ModuleFromInstance(context.Background(), viewer(), "forum", 404)
		if !errors.Is(err, listquery.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("hidden module", func(t *testing.T) {
		sys, mock := newSystem(t)
		expectModule(mock, false)

		_, err := sys.ModuleFromInstance(context.Background(), viewer(), "forum", 2)
		if !errors.Is(err, listquery.ErrUnauthorized) {
			t.Errorf("error = %v, want ErrUnauthorized", err)
		}
	})
}
