package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies failures the way the rest of the system reacts to
// them: validation stays next to the offending field, schema problems
// flip the balance store into fallback mode, partial failures are
// surfaced so the caller can see the inconsistent state.
type Kind string

const (
	KindValidation         Kind = "validation"
	KindBackendUnavailable Kind = "backend_unavailable"
	KindSchemaUnsupported  Kind = "schema_unsupported"
	KindPartialFailure     Kind = "partial_failure"
)

type Error struct {
	Kind  Kind
	Field string // set for validation errors
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Msg
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(field, msg string) *Error {
	return &Error{Kind: KindValidation, Field: field, Msg: msg}
}

func Unavailable(msg string, err error) *Error {
	return &Error{Kind: KindBackendUnavailable, Msg: msg, Err: err}
}

func SchemaUnsupported(msg string, err error) *Error {
	return &Error{Kind: KindSchemaUnsupported, Msg: msg, Err: err}
}

func PartialFailure(msg string, err error) *Error {
	return &Error{Kind: KindPartialFailure, Msg: msg, Err: err}
}

func Partialf(err error, format string, args ...any) *Error {
	return &Error{Kind: KindPartialFailure, Msg: fmt.Sprintf(format, args...), Err: err}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsValidation(err error) bool        { return KindOf(err) == KindValidation }
func IsUnavailable(err error) bool       { return KindOf(err) == KindBackendUnavailable }
func IsSchemaUnsupported(err error) bool { return KindOf(err) == KindSchemaUnsupported }
func IsPartialFailure(err error) bool    { return KindOf(err) == KindPartialFailure }
