// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package apperr defines the error kinds that domain code returns to the
// transport layer.
//
// Services return *Error values (directly or wrapped with %w). The HTTP
// dispatcher maps an error's Kind to a status code through the fixed table
// in Status, so no handler decides status codes on its own.
package apperr

import (
	"errors"
	"maps"
	"net/http"
)

// Kind classifies a failure.
type Kind int

const (
	// KindInternal is a failure the caller cannot fix: storage outages,
	// unresolvable handlers, unexpected panics.
	KindInternal Kind = iota
	// KindNotFound means the addressed resource or route does not exist.
	KindNotFound
	// KindUnauthenticated means the request carried no valid credentials.
	KindUnauthenticated
	// KindForbidden means the caller is authenticated but not allowed.
	KindForbidden
	// KindValidation means caller input is malformed; Fields carries the
	// per-field messages.
	KindValidation
	// KindConflict is a business-rule violation such as a reached cap.
	KindConflict
	// KindTooManyRequests is produced by the rate limiter.
	KindTooManyRequests
)

var statusByKind = map[Kind]int{
	KindInternal:        http.StatusInternalServerError,
	KindNotFound:        http.StatusNotFound,
	KindUnauthenticated: http.StatusUnauthorized,
	KindForbidden:       http.StatusForbidden,
	KindValidation:      http.StatusBadRequest,
	KindConflict:        http.StatusBadRequest,
	KindTooManyRequests: http.StatusTooManyRequests,
}

var kindNames = map[Kind]string{
	KindInternal:        "internal",
	KindNotFound:        "not_found",
	KindUnauthenticated: "unauthenticated",
	KindForbidden:       "forbidden",
	KindValidation:      "validation_failed",
	KindConflict:        "domain_conflict",
	KindTooManyRequests: "too_many_requests",
}

// Status returns the HTTP status code for k. Unknown kinds map to 500.
func (k Kind) Status() int {
	if status, ok := statusByKind[k]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Error is a classified domain failure.
//
// Two *Error values are considered equal by errors.Is when they share Kind
// and Message, so a sentinel enriched with WithFields or Wrap still matches
// the sentinel.
type Error struct {
	Kind    Kind
	Message string
	// Fields holds field-level messages for KindValidation.
	Fields map[string]string
	// StatusCode overrides Kind.Status when non-zero.
	StatusCode int

	err error
}

// New creates an *Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NotFound(message string) *Error        { return New(KindNotFound, message) }
func Unauthenticated(message string) *Error { return New(KindUnauthenticated, message) }
func Forbidden(message string) *Error       { return New(KindForbidden, message) }
func Conflict(message string) *Error        { return New(KindConflict, message) }
func TooManyRequests(message string) *Error { return New(KindTooManyRequests, message) }

// Validation creates a KindValidation error with the given field messages.
func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// Internal creates a KindInternal error that keeps cause for logging.
func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, err: cause}
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.Message + ": " + e.err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.err
}

// Is reports whether target is an *Error with the same kind and message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

// Status returns the HTTP status code for e.
func (e *Error) Status() int {
	if e.StatusCode != 0 {
		return e.StatusCode
	}
	return e.Kind.Status()
}

// WithFields returns a copy of e carrying fields.
func (e *Error) WithFields(fields map[string]string) *Error {
	c := *e
	c.Fields = maps.Clone(fields)
	return &c
}

// WithStatus returns a copy of e answered with status instead of the kind's
// default.
func (e *Error) WithStatus(status int) *Error {
	c := *e
	c.StatusCode = status
	return &c
}

// Wrap returns a copy of e that keeps cause in its chain.
func (e *Error) Wrap(cause error) *Error {
	c := *e
	c.err = cause
	return &c
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}
