package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/apperr"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateConflictErrUniqueViolation(t *testing.T) {
	err := translateConflictErr(&pgconn.PgError{Code: codeUniqueViolation}, "email", "email already registered")

	require.True(t, apperr.IsValidation(err))
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "email", appErr.Field)
	assert.Equal(t, "email already registered", appErr.Msg)
}

func TestTranslateConflictErrPassesThroughOtherErrors(t *testing.T) {
	raw := &pgconn.PgError{Code: "22003"} // numeric_value_out_of_range
	err := translateConflictErr(raw, "email", "email already registered")

	assert.False(t, apperr.IsValidation(err))
	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "22003", pgErr.Code)

	assert.NoError(t, translateConflictErr(nil, "email", ""))
}

func TestTranslateAllowanceErrSchemaCodes(t *testing.T) {
	for _, code := range []string{codeUndefinedColumn, codeUndefinedTable} {
		err := translateAllowanceErr(&pgconn.PgError{Code: code})
		assert.True(t, apperr.IsSchemaUnsupported(err), "SQLSTATE %s", code)
	}
}

func TestTranslateAllowanceErrTextHeuristic(t *testing.T) {
	err := translateAllowanceErr(errors.New(`column "weekly_allowance" does not exist`))
	assert.True(t, apperr.IsSchemaUnsupported(err))

	err = translateAllowanceErr(errors.New(`relation "profiles" does not exist`))
	assert.True(t, apperr.IsSchemaUnsupported(err))

	err = translateAllowanceErr(errors.New("connection refused"))
	assert.False(t, apperr.IsSchemaUnsupported(err))
}

func TestTranslateErrDeadline(t *testing.T) {
	err := translateErr(context.DeadlineExceeded)
	assert.True(t, apperr.IsUnavailable(err))
}
