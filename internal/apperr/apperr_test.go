package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindPredicates(t *testing.T) {
	assert.True(t, IsValidation(Validation("amount", "not a valid number")))
	assert.True(t, IsUnavailable(Unavailable("backend unreachable", nil)))
	assert.True(t, IsSchemaUnsupported(SchemaUnsupported("missing column", nil)))
	assert.True(t, IsPartialFailure(PartialFailure("debit lost", nil)))

	assert.False(t, IsValidation(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("recording expense: %w", Validation("amount", "not a valid number"))
	assert.True(t, IsValidation(err))
}

func TestValidationErrorMessageNamesField(t *testing.T) {
	err := Validation("due_date", "cannot be in the past")
	assert.Equal(t, "due_date: cannot be in the past", err.Error())
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Unavailable("backend unreachable", cause)
	assert.ErrorIs(t, err, cause)
}

func TestPartialfFormats(t *testing.T) {
	err := Partialf(nil, "expense %s recorded but balance not debited", "abc")
	assert.True(t, IsPartialFailure(err))
	assert.Contains(t, err.Error(), "abc")
}
