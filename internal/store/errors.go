package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrConstraintViolation is matched by every ConstraintError.
var ErrConstraintViolation = errors.New("constraint violation")

// ErrUnavailable is returned when the database cannot be reached or timed out.
var ErrUnavailable = errors.New("storage unavailable")

// ErrUnknownColumn is returned when a filter or value names a column the table does not have.
var ErrUnknownColumn = errors.New("unknown column")

// ErrEmptyFilter is returned by deletes without any condition.
var ErrEmptyFilter = errors.New("empty filter")

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
	pgAdminShutdown       = "57P01"
	pgCannotConnectNow    = "57P03"
)

type ConstraintKind string

const (
	ConstraintUnique     ConstraintKind = "unique"
	ConstraintForeignKey ConstraintKind = "foreign_key"
	ConstraintCheck      ConstraintKind = "check"
	ConstraintNotNull    ConstraintKind = "not_null"
)

// ConstraintError describes a write rejected by the database schema.
type ConstraintError struct {
	Kind       ConstraintKind
	Table      string
	Constraint string
	Detail     string
	Err        error
}

func (e *ConstraintError) Error() string {
	msg := fmt.Sprintf("%s constraint %q violated", e.Kind, e.Constraint)
	if e.Table != "" {
		msg += " on " + e.Table
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *ConstraintError) Unwrap() []error {
	return []error{ErrConstraintViolation, e.Err}
}

// Classify maps driver errors onto the store error set. Errors it does not
// recognise are returned unchanged, and already classified errors pass through.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConstraintViolation) || errors.Is(err, ErrUnavailable) {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if kind, ok := constraintKind(pgErr.Code); ok {
			return &ConstraintError{
				Kind:       kind,
				Table:      pgErr.TableName,
				Constraint: pgErr.ConstraintName,
				Detail:     pgErr.Detail,
				Err:        err,
			}
		}
		// class 08 is connection exceptions
		if strings.HasPrefix(pgErr.Code, "08") || pgErr.Code == pgAdminShutdown || pgErr.Code == pgCannotConnectNow {
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return err
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return err
}

func constraintKind(code string) (ConstraintKind, bool) {
	switch code {
	case pgUniqueViolation:
		return ConstraintUnique, true
	case pgForeignKeyViolation:
		return ConstraintForeignKey, true
	case pgCheckViolation:
		return ConstraintCheck, true
	case pgNotNullViolation:
		return ConstraintNotNull, true
	}
	return "", false
}
