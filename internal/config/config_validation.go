// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs)
	}
	if cfg.App.BcryptCost < bcrypt.MinCost || cfg.App.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt cost must be within [%d, %d]", ErrInvalidAppConfigs, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if cfg.App.MaxMessagesPerDay <= 0 || cfg.App.MaxActiveRides <= 0 {
		return fmt.Errorf("%w: caps must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: http address is required", ErrInvalidServerConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}
	switch cfg.Storage.SessionsBackend {
	case SessionsBackendPostgres:
	case SessionsBackendRedis:
		if cfg.Storage.Redis.Address == "" {
			return fmt.Errorf("%w: redis sessions backend requires a redis address", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown sessions backend %q", ErrInvalidStorageConfigs, cfg.Storage.SessionsBackend)
	}

	if !cfg.RateLimit.Disabled && (cfg.RateLimit.MaxRequests <= 0 || cfg.RateLimit.Window <= 0) {
		return fmt.Errorf("%w: max requests and window must be positive", ErrInvalidRateLimitConfigs)
	}

	if cfg.Workers.SessionSweepInterval <= 0 {
		return fmt.Errorf("%w: session sweep interval must be positive", ErrInvalidWorkerConfigs)
	}

	return nil
}
