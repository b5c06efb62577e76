package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes surfaced by reads against an LMS schema.
const (
	pgUndefinedTable  = "42P01"
	pgUndefinedColumn = "42703"
	pgQueryCanceled   = "57014"
)

var (
	// ErrSchema indicates the LMS schema lacks a table or column the query expects.
	ErrSchema = errors.New("lms schema mismatch")
	// ErrCanceled indicates the database canceled the statement.
	ErrCanceled = errors.New("query canceled")
)

// MapError translates database errors to domain errors.
// It maps sql.ErrNoRows to notFoundErr and wraps PostgreSQL schema and
// cancellation errors with ErrSchema and ErrCanceled. Other errors are
// returned unchanged.
func MapError(err error, notFoundErr error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUndefinedTable, pgUndefinedColumn:
			return fmt.Errorf("%w: %s", ErrSchema, pgErr.Message)
		case pgQueryCanceled:
			return fmt.Errorf("%w: %s", ErrCanceled, pgErr.Message)
		}
	}

	return err
}
