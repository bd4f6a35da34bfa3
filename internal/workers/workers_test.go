// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/campus-ride/internal/config"
	"github.com/MKhiriev/campus-ride/internal/logger"
	"github.com/MKhiriev/campus-ride/internal/mock"
	"github.com/MKhiriev/campus-ride/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// countingWorker counts Run calls and returns once ctx is done.
type countingWorker struct {
	runs atomic.Int32
}

func (c *countingWorker) Run(ctx context.Context) {
	c.runs.Add(1)
	<-ctx.Done()
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1, w2, w3 := &countingWorker{}, &countingWorker{}, &countingWorker{}
	ws := &Workers{workers: []Worker{w1, w2, w3}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ws.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return w1.runs.Load() == 1 && w2.runs.Load() == 1 && w3.runs.Load() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Workers.Run did not return after cancel")
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{}

	// Returns immediately with nothing to wait for.
	ws.Run(context.Background())
}

func TestNewWorkers(t *testing.T) {
	ctrl := gomock.NewController(t)
	storages := &store.Storages{SessionStore: mock.NewMockSessionStore(ctrl)}

	ws := NewWorkers(storages, config.Workers{SessionSweepInterval: time.Minute}, logger.Nop())
	require.Len(t, ws.workers, 1)
	assert.IsType(t, &SessionSweeper{}, ws.workers[0])

	ws = NewWorkers(storages, config.Workers{}, logger.Nop())
	assert.Empty(t, ws.workers)
}

func TestSessionSweeper_SweepsUntilCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mock.NewMockSessionStore(ctrl)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	var mu sync.Mutex
	calls := 0
	sessions.EXPECT().DeleteExpired(gomock.Any(), now).DoAndReturn(func(context.Context, time.Time) (int64, error) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls == 2 {
			return 0, errors.New("connection reset")
		}
		return 3, nil
	}).MinTimes(3)

	sweeper := NewSessionSweeper(sessions, 5*time.Millisecond, logger.Nop())
	sweeper.now = func() time.Time { return now }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}

func TestSessionSweeper_SkipsWhenCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mock.NewMockSessionStore(ctrl)

	sweeper := NewSessionSweeper(sessions, time.Hour, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// No DeleteExpired expectation: a cancelled sweeper must not touch the store.
	sweeper.Run(ctx)
}
