// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package ratelimit implements fixed-window request budgets keyed by client
// IP and endpoint.
//
// Two backends are provided: [LocalLimiter] keeps counters in process memory
// and [RedisLimiter] keeps them in Redis so that several server instances
// share one budget.
package ratelimit

import (
	"context"
	"errors"
	"time"
)

//go:generate mockgen -source=ratelimit.go -destination=../mock/ratelimit_mock.go -package=mock

// ErrInvalidPolicy is returned by constructors given a non-positive limit or
// window.
var ErrInvalidPolicy = errors.New("rate limit policy needs a positive limit and window")

// Policy allows Limit requests per Window.
type Policy struct {
	Limit  int
	Window time.Duration
}

func (p Policy) validate() error {
	if p.Limit <= 0 || p.Window <= 0 {
		return ErrInvalidPolicy
	}
	return nil
}

// Decision is the outcome of a single [Limiter.Allow] call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	// RetryAfter is the time left until the current window closes.
	RetryAfter time.Duration
}

// Limiter consumes one request from the budget of key.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// Key builds the limiter key of a client IP and endpoint.
func Key(clientIP, endpoint string) string {
	return clientIP + "|" + endpoint
}

func decide(policy Policy, count int, retryAfter time.Duration) Decision {
	remaining := policy.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	if retryAfter <= 0 {
		retryAfter = time.Millisecond
	}
	return Decision{
		Allowed:    count <= policy.Limit,
		Limit:      policy.Limit,
		Remaining:  remaining,
		RetryAfter: retryAfter,
	}
}
