package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	ierr "github.com/tutordesk/tutordesk/internal/errors"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

// wrapError translates driver errors into the application's error kinds
func wrapError(err error, entity string, details map[string]any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ierr.WithError(err).
			WithHintf("%s not found", entity).
			WithReportableDetails(details).
			Mark(ierr.ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return ierr.WithError(err).
				WithHintf("%s already exists", entity).
				WithReportableDetails(details).
				Mark(ierr.ErrAlreadyExists)
		case pqForeignKeyViolation:
			return ierr.WithError(err).
				WithHintf("%s references a record that does not exist", entity).
				WithReportableDetails(details).
				Mark(ierr.ErrValidation)
		case pqCheckViolation:
			return ierr.WithError(err).
				WithHintf("%s has invalid values", entity).
				WithReportableDetails(details).
				Mark(ierr.ErrValidation)
		}
	}

	return ierr.WithError(err).
		WithHintf("Failed to access %s", entity).
		WithReportableDetails(details).
		Mark(ierr.ErrDatabase)
}

// expectAffected turns a write that touched no row into a not found error
func expectAffected(res sql.Result, entity string, details map[string]any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return wrapError(err, entity, details)
	}
	if n == 0 {
		return ierr.NewErrorf("%s not found", entity).
			WithHintf("%s not found", entity).
			WithReportableDetails(details).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
