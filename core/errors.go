package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError reports missing or malformed input; rendered as a 400.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// DuplicateError reports a unique-constraint violation; rendered as a 409.
type DuplicateError struct {
	Err   error
	Field string
}

func NewDuplicateError(err error, field string) error {
	return &DuplicateError{Err: err, Field: field}
}

func (err DuplicateError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// AuthError reports an identity, credential or approval failure.
// Only the wrapped sentinel's message is ever surfaced to the client.
type AuthError struct {
	Err     error
	Pending bool // account exists but awaits admin approval
}

func NewAuthError(err error, pending ...bool) error {
	var p bool
	if len(pending) > 0 {
		p = pending[0]
	}
	return &AuthError{Err: err, Pending: p}
}

func (err AuthError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// NotFoundError reports an absent referenced id; rendered as a 404.
type NotFoundError struct {
	Err error
}

func NewNotFoundError(err error) error {
	return &NotFoundError{Err: err}
}

func (err NotFoundError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
