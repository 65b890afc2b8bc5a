package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the transport layer. Every error the service
// layer returns is either an *Error carrying one of these kinds or an
// unclassified store failure, which callers treat as KindInternal.
type Kind string

const (
	KindNotFound     Kind = "NOT_FOUND"
	KindAccessDenied Kind = "ACCESS_DENIED"
	KindValidation   Kind = "VALIDATION"
	KindConflict     Kind = "CONFLICT"
	KindInternal     Kind = "INTERNAL"
)

// Error is a classified business error. Entity names the resource involved
// ("todo", "user") and Ref carries the offending identifier or field name so
// callers can build a user-facing message.
type Error struct {
	Kind    Kind
	Entity  string
	Ref     string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("%s: %s (%s=%s)", e.Kind, e.Message, e.Entity, e.Ref)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(entity, ref string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Entity:  entity,
		Ref:     ref,
		Message: entity + " not found",
	}
}

func AccessDenied(entity, ref string) *Error {
	return &Error{
		Kind:    KindAccessDenied,
		Entity:  entity,
		Ref:     ref,
		Message: "not the owner of this " + entity,
	}
}

func Validation(field, message string) *Error {
	return &Error{
		Kind:    KindValidation,
		Entity:  "field",
		Ref:     field,
		Message: message,
	}
}

func Conflict(entity, ref, message string) *Error {
	return &Error{
		Kind:    KindConflict,
		Entity:  entity,
		Ref:     ref,
		Message: message,
	}
}

func Internal(message string, err error) *Error {
	return &Error{
		Kind:    KindInternal,
		Message: message,
		Err:     err,
	}
}

// KindOf extracts the kind from an error chain. Anything that is not an
// *Error counts as an internal failure.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
func IsAccessDenied(err error) bool { return KindOf(err) == KindAccessDenied }
func IsValidation(err error) bool   { return KindOf(err) == KindValidation }
func IsConflict(err error) bool     { return KindOf(err) == KindConflict }
