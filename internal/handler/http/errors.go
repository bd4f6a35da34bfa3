// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "github.com/MKhiriev/campus-ride/internal/apperr"

var (
	// ErrTooManyRequests is answered when a client exhausted its request
	// budget for an endpoint.
	ErrTooManyRequests = apperr.TooManyRequests("too many requests, try again later")

	// ErrInvalidQuery is returned for a malformed query parameter.
	ErrInvalidQuery = apperr.Validation("invalid query parameters", nil)
)
