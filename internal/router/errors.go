// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package router

import "errors"

var (
	// ErrRouteNotFound is returned by [Table.Resolve] when no registered
	// route matches the method and path.
	ErrRouteNotFound = errors.New("route not found")

	// ErrInvalidRoute is returned by [Table.Register] for an empty method,
	// a pattern not starting with "/", a malformed placeholder segment or a
	// nil handler.
	ErrInvalidRoute = errors.New("invalid route")
)
