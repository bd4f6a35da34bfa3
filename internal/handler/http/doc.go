// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport layer of the application.
//
// A chi mux carries the cross-cutting middleware (panic recovery, tracing,
// access logging, compression, CORS and rate limiting) and serves the
// liveness and version endpoints. Every API route is registered on a
// router.Table and served by a router.Dispatcher mounted as the mux's
// catch-all, so route resolution, authentication and the response envelope
// are owned by the router package.
package http
