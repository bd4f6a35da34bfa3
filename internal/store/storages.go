// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/campus-ride/internal/config"
	"github.com/MKhiriev/campus-ride/internal/logger"
	"github.com/redis/go-redis/v9"
)

// ErrRedisRequired is returned when the Redis sessions backend is selected
// without a Redis client.
var ErrRedisRequired = errors.New("redis sessions backend requires a redis client")

// Storages groups every repository used by the service layer.
type Storages struct {
	UserRepository    UserRepository
	SessionStore      SessionStore
	RideRepository    RideRepository
	MessageRepository MessageRepository
}

// NewStorages builds the repositories over db. The session store lives in
// PostgreSQL unless cfg selects the Redis backend, in which case redisClient
// must be non-nil.
func NewStorages(db *DB, redisClient redis.UniversalClient, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	storages := &Storages{
		UserRepository:    NewUserRepository(db, log),
		RideRepository:    NewRideRepository(db, log),
		MessageRepository: NewMessageRepository(db, log),
	}

	switch cfg.SessionsBackend {
	case config.SessionsBackendRedis:
		if redisClient == nil {
			return nil, ErrRedisRequired
		}
		storages.SessionStore = NewRedisSessionStore(redisClient, log)
	case config.SessionsBackendPostgres, "":
		storages.SessionStore = NewSessionRepository(db, log)
	default:
		return nil, fmt.Errorf("unknown sessions backend %q", cfg.SessionsBackend)
	}

	log.Info().Str("func", "NewStorages").Str("sessions_backend", cfg.SessionsBackend).Msg("storages created")
	return storages, nil
}
