// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/campus-ride/internal/logger"
	"github.com/MKhiriev/campus-ride/internal/store"
)

// SessionSweeper periodically deletes expired sessions. Expired sessions are
// already rejected by authentication; sweeping only keeps the store small.
type SessionSweeper struct {
	sessions store.SessionStore
	interval time.Duration

	now    func() time.Time
	logger *logger.Logger
}

func NewSessionSweeper(sessions store.SessionStore, interval time.Duration, logger *logger.Logger) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

// Run sweeps once immediately and then every interval until ctx is done.
func (s *SessionSweeper) Run(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("session sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.sweep(ctx)

		select {
		case <-ctx.Done():
			s.logger.Info().Msg("session sweeper stopped")
			return
		case <-ticker.C:
		}
	}
}

func (s *SessionSweeper) sweep(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	removed, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		s.logger.Err(err).Str("func", "*SessionSweeper.sweep").Msg("error deleting expired sessions")
		return
	}
	if removed > 0 {
		s.logger.Info().Int64("removed", removed).Msg("expired sessions deleted")
	}
}
