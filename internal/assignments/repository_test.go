package assignments_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/JaimeStill/aspiredu/internal/access"
	"github.com/JaimeStill/aspiredu/internal/assignments"
	"github.com/JaimeStill/aspiredu/internal/lms"
	"github.com/JaimeStill/aspiredu/pkg/listquery"
	"github.com/JaimeStill/aspiredu/pkg/pagination"
)

var cfg = pagination.Config{DefaultPageSize: 100, MaxPageSize: 1000}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSystem(t *testing.T) (assignments.System, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return assignments.New(db, discard(), pagination.Static(cfg)), mock
}

var assignmentColumns = []string{"id", "cmid", "course", "name", "duedate", "grade", "timemodified", "visible", "path"}

var submissionColumns = []string{"id", "assignment", "userid", "attemptnumber", "timecreated", "timemodified", "status"}

var moduleColumns = []string{
	"id", "course", "module", "modname", "instance", "section", "sectionnum", "idnumber", "added",
	"visible", "visibleold", "groupmode", "completion", "completionexpected", "path",
}

func expectCourseContext(mock sqlmock.Sqlmock, id int64, path string) {
	mock.ExpectQuery("FROM mdl_context").
		WithArgs(lms.LevelCourse, id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "contextlevel", "instanceid", "path"}).
			AddRow(20+id, lms.LevelCourse, id, path))
}

func assignmentRows() *sqlmock.Rows {
	return sqlmock.NewRows(assignmentColumns).
		AddRow(1, 90, 7, "Essay", 400, 100, 10, 1, "/1/3/90").
		AddRow(2, 91, 7, "Lab", 300, 100, 20, 1, "/1/3/91").
		AddRow(3, 92, 7, "Draft", 200, 100, 30, 0, "/1/3/92").
		AddRow(4, 93, 7, "Quiz", 100, 100, 40, 1, "/1/3/93")
}

func teacher(extra ...access.Grant) *access.Requester {
	grants := append([]access.Grant{{Path: "/1/3", Capability: lms.CapAssignView}}, extra...)
	return access.NewRequester(5, false, grants...)
}

func TestAssignments(t *testing.T) {
	tests := []struct {
		name      string
		requester *access.Requester
		query     listquery.Query
		want      []int64
		wantTotal int
		wantPages int
	}{
		{
			name:      "hidden excluded",
			requester: teacher(),
			query:     listquery.NewQuery(0),
			want:      []int64{1, 2, 4},
			wantTotal: 3,
			wantPages: 1,
		},
		{
			name:      "hidden visible with capability",
			requester: teacher(access.Grant{Path: "/1/3", Capability: lms.CapViewHiddenActivities}),
			query:     listquery.NewQuery(2),
			want:      []int64{1, 2},
			wantTotal: 4,
			wantPages: 2,
		},
		{
			name:      "sorted by due date descending",
			requester: teacher(access.Grant{Path: "/1/3", Capability: lms.CapViewHiddenActivities}),
			query: listquery.Query{
				Page: 2, PageSize: 3, SortField: "duedate", Direction: listquery.Descending,
			},
			want:      []int64{4},
			wantTotal: 4,
			wantPages: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, mock := newSystem(t)
			expectCourseContext(mock, 7, "/1/3")
			mock.ExpectQuery("FROM mdl_assign a").
				WithArgs(int64(7)).
				WillReturnRows(assignmentRows())

			result, err := sys.Assignments(context.Background(), tt.requester, 7, listquery.DateRange{}, tt.query)
			if err != nil {
				t.Fatalf("Assignments failed: %v", err)
			}

			got := make([]int64, len(result.Items))
			for i, a := range result.Items {
				got[i] = a.ID
			}
			if len(got) != len(tt.want) {
				t.Fatalf("items = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("items = %v, want %v", got, tt.want)
				}
			}
			if result.TotalCount != tt.wantTotal || result.TotalPages != tt.wantPages {
				t.Errorf("total = %d pages = %d, want %d/%d", result.TotalCount, result.TotalPages, tt.wantTotal, tt.wantPages)
			}
		})
	}
}

func TestAssignmentsDateRange(t *testing.T) {
	sys, mock := newSystem(t)
	expectCourseContext(mock, 7, "/1/3")
	mock.ExpectQuery("FROM mdl_assign a").
		WithArgs(int64(7), int64(15), int64(35)).
		WillReturnRows(sqlmock.NewRows(assignmentColumns).
			AddRow(2, 91, 7, "Lab", 300, 100, 20, 1, "/1/3/91"))

	dates := listquery.DateRange{Start: 15, End: 35}
	result, err := sys.Assignments(context.Background(), teacher(), 7, dates, listquery.NewQuery(10))
	if err != nil {
		t.Fatalf("Assignments failed: %v", err)
	}
	if result.TotalCount != 1 {
		t.Errorf("total = %d, want 1", result.TotalCount)
	}
}

func TestAssignmentsForbidden(t *testing.T) {
	sys, mock := newSystem(t)
	expectCourseContext(mock, 8, "/1/4")

	_, err := sys.Assignments(context.Background(), teacher(), 8, listquery.DateRange{}, listquery.NewQuery(10))
	if !errors.Is(err, listquery.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSubmissions(t *testing.T) {
	sys, mock := newSystem(t)
	grader := access.NewRequester(5, false, access.Grant{Path: "/1/3", Capability: lms.CapAssignGrade})

	mock.ExpectQuery("FROM mdl_course_modules cm").
		WithArgs("assign", int64(1)).
		WillReturnRows(sqlmock.NewRows(moduleColumns).
			AddRow(90, 7, 1, "assign", 1, 10, 1, "", 100, true, true, 0, 0, 0, "/1/3/90"))
	mock.ExpectQuery("FROM mdl_assign_submission s").
		WithArgs(int64(1), "submitted").
		WillReturnRows(sqlmock.NewRows(submissionColumns).
			AddRow(11, 1, 40, 0, 100, 150, "submitted").
			AddRow(12, 1, 41, 1, 110, 120, "submitted"))

	q := listquery.NewQuery(10)
	q.SortField = "timemodified"
	result, err := sys.Submissions(context.Background(), grader, 1, assignments.SubmissionOptions{Status: "submitted"}, q)
	if err != nil {
		t.Fatalf("Submissions failed: %v", err)
	}

	if len(result.Items) != 2 || result.Items[0].SubmissionID != 12 {
		t.Errorf("items = %+v, want 12 first", result.Items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSubmissionsErrors(t *testing.T) {
	t.Run("unknown status", func(t *testing.T) {
		sys, _ := newSystem(t)
		_, err := sys.Submissions(context.Background(), teacher(), 1, assignments.SubmissionOptions{Status: "graded"}, listquery.NewQuery(10))
		var verr *listquery.ValidationError
		if !errors.As(err, &verr) || verr.Param != "status" {
			t.Errorf("error = %v, want status ValidationError", err)
		}
	})

	t.Run("missing assignment", func(t *testing.T) {
		sys, mock := newSystem(t)
		mock.ExpectQuery("FROM mdl_course_modules cm").
			WithArgs("assign", int64(404)).
			WillReturnRows(sqlmock.NewRows(moduleColumns))

		_, err := sys.Submissions(context.Background(), teacher(), 404, assignments.SubmissionOptions{}, listquery.NewQuery(10))
		if !errors.Is(err, listquery.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("no grade capability", func(t *testing.T) {
		sys, mock := newSystem(t)
		mock.ExpectQuery("FROM mdl_course_modules cm").
			WillReturnRows(sqlmock.NewRows(moduleColumns).
				AddRow(90, 7, 1, "assign", 1, 10, 1, "", 100, true, true, 0, 0, 0, "/1/3/90"))

		_, err := sys.Submissions(context.Background(), teacher(), 1, assignments.SubmissionOptions{}, listquery.NewQuery(10))
		if !errors.Is(err, listquery.ErrUnauthorized) {
			t.Errorf("error = %v, want ErrUnauthorized", err)
		}
	})
}
