// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from the process environment. Variable names come
// from the `env` and `envPrefix` tags of [StructuredConfig], so the token
// sign key is read from APP_TOKEN_SIGN_KEY and the Redis address from
// STORAGE_REDIS_ADDRESS.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.ParseWithOptions(cfg, env.Options{}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
