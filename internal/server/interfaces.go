// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle contract for the servers managed by this
// package.
type Server interface {
	// RunServer starts serving requests and blocks until the process
	// receives SIGTERM, SIGINT or SIGQUIT or the listener fails.
	RunServer() error

	// Shutdown gracefully stops the server within the deadline of ctx.
	Shutdown(ctx context.Context) error
}
