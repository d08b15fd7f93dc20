// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies application errors so the HTTP boundary can map
// them to status codes without inspecting store internals.
type ErrorKind string

const (
	// ErrKindValidation means input failed schema constraints. The caller
	// must correct the input; never retried.
	ErrKindValidation ErrorKind = "validation"

	// ErrKindNotFound means a referenced entity does not exist.
	ErrKindNotFound ErrorKind = "not_found"

	// ErrKindConflict means a unique constraint (slug) was violated after
	// the optimistic pre-check. The caller may retry once with a freshly
	// disambiguated value.
	ErrKindConflict ErrorKind = "conflict"

	// ErrKindForeignKey means a comment referenced a nonexistent post.
	// Surfaced as a client input error.
	ErrKindForeignKey ErrorKind = "foreign_key"

	// ErrKindPersistence means the backing store failed unexpectedly.
	// Treated as transient; the cause is logged, never sent to clients.
	ErrKindPersistence ErrorKind = "persistence"
)

// Error is the typed application error returned by the service layer.
// Raw store/driver errors never cross the service boundary.
type Error struct {
	Kind    ErrorKind
	Message string
	Field   string // offending field for validation errors, if known
	Err     error  // wrapped cause, for logging only
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError reports an input constraint violation on field.
func NewValidationError(field, message string) *Error {
	return &Error{Kind: ErrKindValidation, Field: field, Message: message}
}

// NewNotFoundError reports that the named resource with the given id
// does not exist.
func NewNotFoundError(resource string, id any) *Error {
	return &Error{
		Kind:    ErrKindNotFound,
		Message: fmt.Sprintf("%s %v not found", resource, id),
	}
}

// NewConflictError reports a unique-constraint violation.
func NewConflictError(message string, err error) *Error {
	return &Error{Kind: ErrKindConflict, Message: message, Err: err}
}

// NewForeignKeyError reports a reference to a nonexistent parent row.
func NewForeignKeyError(message string, err error) *Error {
	return &Error{Kind: ErrKindForeignKey, Message: message, Err: err}
}

// NewPersistenceError wraps an unexpected store failure. The message shown
// to clients stays generic; err carries the detail for logs.
func NewPersistenceError(err error) *Error {
	return &Error{Kind: ErrKindPersistence, Message: "storage failure", Err: err}
}

// KindOf returns the ErrorKind of err, or ErrKindPersistence when err is
// not a typed application error.
func KindOf(err error) ErrorKind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ErrKindPersistence
}
