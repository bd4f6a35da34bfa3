// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks caller input before it reaches the services.
//
// A Validator inspects a request model and reports every offending field at
// once: the returned error is an *apperr.Error of kind validation whose
// Fields map is keyed by the JSON name of the field. Passing field names to
// Validate restricts the check to those fields.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
