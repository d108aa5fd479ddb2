// Package service implements the business rules layered over the
// repositories: category shadowing, budget aggregation, and dashboard
// composition.
package service

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Domain error kinds. All are recoverable by the caller: no partial
// mutation happens before any of these is returned.
var (
	// ErrDuplicateName means the user already owns a category with the name.
	ErrDuplicateName = errors.New("you already have a category with this name")
	// ErrReservedName means the name belongs to a default category.
	ErrReservedName = errors.New("this name is reserved for a default category")
	// ErrNotFound means the record does not exist or is not visible to the user.
	ErrNotFound = errors.New("record not found")
	// ErrPermission means the record exists but the user may not modify it.
	ErrPermission = errors.New("permission denied")
	// ErrDuplicateBudget means the user already has a budget for the category.
	ErrDuplicateBudget = errors.New("a budget for this category already exists")
)

// ValidationError reports invalid input for a mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsUniqueViolation reports whether err carries a Postgres unique
// constraint violation. The unique indexes are the backstop for the
// application-level checks: two concurrent check-then-insert requests
// cannot both get past them.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
