// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ratelimit

import (
	"context"
	"sync"
	"time"
)

// sweepEvery is how many Allow calls pass between purges of closed windows.
const sweepEvery = 1024

type window struct {
	start time.Time
	count int
}

// LocalLimiter is an in-process fixed-window limiter. It is safe for
// concurrent use.
type LocalLimiter struct {
	policy Policy
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window
	calls   int
}

// NewLocalLimiter returns a LocalLimiter enforcing policy.
func NewLocalLimiter(policy Policy) (*LocalLimiter, error) {
	if err := policy.validate(); err != nil {
		return nil, err
	}
	return &LocalLimiter{
		policy:  policy,
		now:     time.Now,
		windows: make(map[string]*window),
	}, nil
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (Decision, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.calls++
	if l.calls%sweepEvery == 0 {
		l.sweep(now)
	}

	w, ok := l.windows[key]
	if !ok || !now.Before(w.start.Add(l.policy.Window)) {
		w = &window{start: now}
		l.windows[key] = w
	}
	w.count++

	return decide(l.policy, w.count, w.start.Add(l.policy.Window).Sub(now)), nil
}

// sweep drops windows that are closed at now. Callers hold l.mu.
func (l *LocalLimiter) sweep(now time.Time) {
	for key, w := range l.windows {
		if !now.Before(w.start.Add(l.policy.Window)) {
			delete(l.windows, key)
		}
	}
}

// Len reports how many windows are tracked.
func (l *LocalLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}
