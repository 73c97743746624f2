package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"encore.dev/beta/errs"
)

func notFound(id string) error {
	return errs.WrapCode(ErrNotFound, errs.NotFound, "session "+id+" not found")
}

func stale(id string) error {
	return errs.WrapCode(ErrStaleSnapshot, errs.Aborted, "session "+id+" was modified concurrently")
}

func isUniqueViolation(err error) bool {
	var e *pgconn.PgError
	return errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
