// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/campus-ride/internal/logger"
	"github.com/MKhiriev/campus-ride/internal/utils"
	"github.com/MKhiriev/campus-ride/models"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// redisSession is the value stored under a session key.
type redisSession struct {
	UserID    int64     `json:"user_id"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// redisSessionStore keeps sessions in Redis under "session:<sha256(token)>".
// Every key carries a TTL equal to the remaining session lifetime, so Redis
// drops expired sessions by itself.
type redisSessionStore struct {
	client redis.UniversalClient
	logger *logger.Logger
	now    func() time.Time
}

// NewRedisSessionStore constructs a Redis-backed [SessionStore].
func NewRedisSessionStore(client redis.UniversalClient, logger *logger.Logger) SessionStore {
	logger.Debug().Msg("creating redis session store")
	return &redisSessionStore{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

func sessionKey(token string) string {
	return sessionKeyPrefix + utils.HashToken(token)
}

func (s *redisSessionStore) Create(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	now := s.now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}

	ttl := session.ExpiresAt.Sub(now)
	if ttl <= 0 {
		// nothing to keep; Find would reject it anyway
		log.Debug().Str("func", "*redisSessionStore.Create").Msg("session already expired, not stored")
		return nil
	}

	data, err := json.Marshal(redisSession{
		UserID:    session.UserID,
		IPAddress: session.IPAddress,
		UserAgent: session.UserAgent,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSessionEncoding, err)
	}

	if err = s.client.Set(ctx, sessionKey(session.Token), data, ttl).Err(); err != nil {
		log.Err(err).
			Str("func", "*redisSessionStore.Create").
			Int64("user_id", session.UserID).
			Msg("error saving session")
		return err
	}

	return nil
}

func (s *redisSessionStore) Find(ctx context.Context, token string) (models.Session, error) {
	log := logger.FromContext(ctx)

	raw, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Session{}, ErrSessionNotFound
		}
		log.Err(err).Str("func", "*redisSessionStore.Find").Msg("error finding session")
		return models.Session{}, err
	}

	var stored redisSession
	if err = json.Unmarshal(raw, &stored); err != nil {
		log.Err(err).Str("func", "*redisSessionStore.Find").Msg("error decoding session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrSessionEncoding, err)
	}

	return models.Session{
		UserID:    stored.UserID,
		Token:     token,
		IPAddress: stored.IPAddress,
		UserAgent: stored.UserAgent,
		ExpiresAt: stored.ExpiresAt,
		CreatedAt: stored.CreatedAt,
	}, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisSessionStore.Delete").Msg("error deleting session")
		return err
	}
	return nil
}

// DeleteExpired is a no-op: keys expire through their TTL.
func (s *redisSessionStore) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}
