package access_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/JaimeStill/aspiredu/internal/access"
	"github.com/JaimeStill/aspiredu/internal/lms"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolve(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM mdl_user").
		WithArgs("jdoe").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectQuery("FROM mdl_config WHERE name = 'siteadmins'").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("2,12"))
	mock.ExpectQuery("FROM mdl_role_assignments ra").
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"path", "capability"}).
			AddRow("/1/3", lms.CapCourseView))
	mock.ExpectCommit()

	sys := access.New(db, discard())
	r, err := sys.Resolve(context.Background(), "username", "jdoe")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if r.UserID() != 12 {
		t.Errorf("UserID() = %d, want 12", r.UserID())
	}
	if !r.SiteAdmin() {
		t.Error("user 12 is listed in siteadmins")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestResolveGrants(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM mdl_user").
		WithArgs("s@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(40))
	mock.ExpectQuery("siteadmins").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("2"))
	mock.ExpectQuery("FROM mdl_role_assignments ra").
		WithArgs(int64(40)).
		WillReturnRows(sqlmock.NewRows([]string{"path", "capability"}).
			AddRow("/1", lms.CapViewDropoutDetective).
			AddRow("/1/3/25", lms.CapAssignGrade))
	mock.ExpectCommit()

	r, err := access.New(db, discard()).Resolve(context.Background(), "email", "S@Example.com")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if r.SiteAdmin() {
		t.Error("user 40 is not a site admin")
	}
	if !r.Admin() {
		t.Error("system level product capability should make the user an admin")
	}
	if !r.Can(lms.CapAssignGrade, "/1/3/25/80") {
		t.Error("grant should apply to descendant contexts")
	}
	if r.Can(lms.CapAssignGrade, "/1/3/26") {
		t.Error("grant should not apply to sibling contexts")
	}
}

func TestResolveUnknownUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM mdl_user").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err = access.New(db, discard()).Resolve(context.Background(), "username", "ghost")
	if !errors.Is(err, access.ErrUnknownUser) {
		t.Fatalf("Resolve() error = %v, want ErrUnknownUser", err)
	}
	if access.MapHTTPStatus(err) != 401 {
		t.Errorf("status = %d, want 401", access.MapHTTPStatus(err))
	}
}

func TestResolveUnsupportedField(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	_, err = access.New(db, discard()).Resolve(context.Background(), "password", "x")
	if !errors.Is(err, access.ErrUserField) {
		t.Errorf("Resolve() error = %v, want ErrUserField", err)
	}
}
