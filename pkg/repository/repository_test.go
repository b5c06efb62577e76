package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaimeStill/aspiredu/pkg/repository"
)

var errNotFound = errors.New("not found")

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		wantIs error
	}{
		{"no rows", sql.ErrNoRows, errNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), errNotFound},
		{"undefined table", &pgconn.PgError{Code: "42P01", Message: "relation does not exist"}, repository.ErrSchema},
		{"undefined column", &pgconn.PgError{Code: "42703"}, repository.ErrSchema},
		{"canceled", &pgconn.PgError{Code: "57014"}, repository.ErrCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repository.MapError(tt.err, errNotFound); !errors.Is(got, tt.wantIs) {
				t.Errorf("MapError() = %v, want %v", got, tt.wantIs)
			}
		})
	}

	if repository.MapError(nil, errNotFound) != nil {
		t.Error("MapError(nil) should be nil")
	}

	other := errors.New("connection reset")
	if got := repository.MapError(other, errNotFound); got != other {
		t.Errorf("MapError() = %v, want passthrough", got)
	}
}

func TestQueryMany(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id FROM mdl_course").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2).AddRow(5))

	ids, err := repository.QueryIDs(context.Background(), db, "SELECT id FROM mdl_course")
	if err != nil {
		t.Fatalf("QueryIDs failed: %v", err)
	}
	if !slices.Equal(ids, []int64{2, 5}) {
		t.Errorf("ids = %v, want [2 5]", ids)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestQueryManyEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	ids, err := repository.QueryIDs(context.Background(), db, "SELECT id FROM mdl_user")
	if err != nil {
		t.Fatalf("QueryIDs failed: %v", err)
	}
	if ids == nil || len(ids) != 0 {
		t.Errorf("ids = %v, want empty non-nil slice", ids)
	}
}

func TestQueryOneNoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT fullname").WithArgs(9).WillReturnRows(sqlmock.NewRows([]string{"fullname"}))

	_, err = repository.QueryOne(context.Background(), db, "SELECT fullname FROM mdl_course WHERE id = $1", []any{9},
		func(s repository.Scanner) (string, error) {
			var name string
			err := s.Scan(&name)
			return name, err
		})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT 1").WithArgs(1).WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery("SELECT 1").WithArgs(2).WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	ok, err := repository.Exists(context.Background(), db, "SELECT 1 FROM mdl_user WHERE id = $1", 1)
	if err != nil || !ok {
		t.Errorf("Exists(1) = %v, %v, want true", ok, err)
	}
	ok, err = repository.Exists(context.Background(), db, "SELECT 1 FROM mdl_user WHERE id = $1", 2)
	if err != nil || ok {
		t.Errorf("Exists(2) = %v, %v, want false", ok, err)
	}
}

func TestWithSnapshot(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	ids, err := repository.WithSnapshot(context.Background(), db, func(tx *sql.Tx) ([]int64, error) {
		return repository.QueryIDs(context.Background(), tx, "SELECT id FROM mdl_grade_items")
	})
	if err != nil {
		t.Fatalf("WithSnapshot failed: %v", err)
	}
	if !slices.Equal(ids, []int64{3}) {
		t.Errorf("ids = %v, want [3]", ids)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestWithSnapshotRollback(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	_, err = repository.WithSnapshot(context.Background(), db, func(*sql.Tx) (int, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
