// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new
	// user fails because the e-mail is already taken.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when a user lookup matches no row.
	ErrUserNotFound = errors.New("user was not found")

	// ErrUniversityNotFound is returned when no university owns the given
	// e-mail domain.
	ErrUniversityNotFound = errors.New("university was not found")

	// ErrVerificationTokenNotFound is returned when no unverified user holds
	// the given verification token.
	ErrVerificationTokenNotFound = errors.New("verification token was not found")

	// ErrSessionNotFound is returned when a token has no stored session.
	ErrSessionNotFound = errors.New("session was not found")

	// ErrRideNotFound is returned when a ride id matches no row.
	ErrRideNotFound = errors.New("ride was not found")

	// ErrAlreadyRequested is returned when a user asks to join a ride twice.
	ErrAlreadyRequested = errors.New("join request already exists")

	// ErrReferencedRowMissing is returned when an insert references a user
	// or ride that does not exist.
	ErrReferencedRowMissing = errors.New("referenced row does not exist")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning during multi-row iteration
	// fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrSessionEncoding is returned when a session cannot be serialized to
	// or from its Redis representation.
	ErrSessionEncoding = errors.New("failed to encode session")
)
