// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server wires and runs the application's HTTP server and
// background workers.
//
// It owns their lifecycle: startup, signal handling and graceful shutdown
// bounded by the configured shutdown timeout.
package server
