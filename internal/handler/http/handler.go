// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"time"

	"github.com/MKhiriev/campus-ride/internal/config"
	"github.com/MKhiriev/campus-ride/internal/logger"
	"github.com/MKhiriev/campus-ride/internal/ratelimit"
	"github.com/MKhiriev/campus-ride/internal/service"
	"github.com/MKhiriev/campus-ride/internal/utils"
)

type Handler struct {
	services *service.Services

	// limiter is nil when rate limiting is disabled.
	limiter ratelimit.Limiter

	cookieSecure  bool
	corsOrigin    string
	tokenLifetime time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, limiter ratelimit.Limiter, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	lifetime := cfg.App.TokenDuration
	if lifetime <= 0 {
		lifetime = utils.DefaultTokenLifetime
	}

	logger.Info().Bool("rate_limit", limiter != nil).Msg("http handler created")
	return &Handler{
		services:      services,
		limiter:       limiter,
		cookieSecure:  !cfg.Server.CookieInsecure,
		corsOrigin:    cfg.Server.CORSOrigin,
		tokenLifetime: lifetime,
		logger:        logger,
	}
}
