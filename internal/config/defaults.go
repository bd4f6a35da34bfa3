// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Defaults returns the configuration used for every field no other source
// sets.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenDuration:     24 * time.Hour,
			BcryptCost:        12,
			MaxMessagesPerDay: 50,
			MaxActiveRides:    10,
			BaseURL:           "http://localhost:8080",
			LogLevel:          "info",
		},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigin:      "*",
		},
		Storage: Storage{
			SessionsBackend: SessionsBackendPostgres,
		},
		RateLimit: RateLimit{
			MaxRequests: 100,
			Window:      15 * time.Minute,
		},
		Workers: Workers{
			SessionSweepInterval: time.Hour,
		},
	}
}
