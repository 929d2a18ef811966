package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/apperr"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the repositories switch on.
const (
	codeUndefinedColumn = "42703"
	codeUndefinedTable  = "42P01"
	codeUniqueViolation = "23505"
)

// translateConflictErr maps a unique-constraint violation on the named
// field to a validation error, so handlers answer 400 instead of
// leaking the raw driver error as a 500.
func translateConflictErr(err error, field, msg string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
		return apperr.Validation(field, msg)
	}
	return translateErr(err)
}

// translateAllowanceErr maps driver errors on the weekly_allowance path
// to the structured kinds the balance store switches on. SQLSTATE is
// checked first; the error-text heuristic is a fallback for backends
// that do not expose a code, and lives only here.
func translateAllowanceErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUndefinedColumn, codeUndefinedTable:
			return apperr.SchemaUnsupported("weekly allowance not supported by schema", err)
		}
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "column") && strings.Contains(msg, "weekly_allowance") {
		return apperr.SchemaUnsupported("weekly allowance not supported by schema", err)
	}
	if strings.Contains(msg, "relation") && strings.Contains(msg, "profiles") {
		return apperr.SchemaUnsupported("weekly allowance not supported by schema", err)
	}
	return translateErr(err)
}

// translateErr wraps transport-level failures as backend-unavailable so
// callers can decide about retries without knowing the driver.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperr.Unavailable("backend call timed out", err)
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return apperr.Unavailable("backend unreachable", err)
	}
	return err
}
