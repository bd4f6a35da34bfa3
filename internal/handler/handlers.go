// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"fmt"

	"github.com/MKhiriev/campus-ride/internal/config"
	"github.com/MKhiriev/campus-ride/internal/handler/http"
	"github.com/MKhiriev/campus-ride/internal/logger"
	"github.com/MKhiriev/campus-ride/internal/ratelimit"
	"github.com/MKhiriev/campus-ride/internal/service"
	"github.com/redis/go-redis/v9"
)

// rateLimitKeyPrefix namespaces the limiter counters in a shared Redis.
const rateLimitKeyPrefix = "campus-ride:ratelimit:"

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the transport handlers. redisClient may be nil; the
// rate limiter then keeps its counters in process memory.
func NewHandlers(services *service.Services, redisClient redis.UniversalClient, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	limiter, err := newLimiter(redisClient, cfg.RateLimit)
	if err != nil {
		return nil, err
	}

	return &Handlers{
		HTTP: http.NewHandler(services, limiter, cfg, logger),
	}, nil
}

// newLimiter returns nil when rate limiting is disabled.
func newLimiter(redisClient redis.UniversalClient, cfg config.RateLimit) (ratelimit.Limiter, error) {
	if cfg.Disabled {
		return nil, nil
	}

	policy := ratelimit.Policy{Limit: cfg.MaxRequests, Window: cfg.Window}

	if redisClient != nil {
		limiter, err := ratelimit.NewRedisLimiter(redisClient, policy, rateLimitKeyPrefix)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errInvalidRateLimit, err)
		}
		return limiter, nil
	}

	limiter, err := ratelimit.NewLocalLimiter(policy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidRateLimit, err)
	}
	return limiter, nil
}
