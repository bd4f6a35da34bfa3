// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey      string   `json:"token_sign_key"`
		TokenDuration     Duration `json:"token_duration"`
		BcryptCost        int      `json:"bcrypt_cost"`
		MaxMessagesPerDay int      `json:"max_messages_per_day"`
		MaxActiveRides    int      `json:"max_active_rides"`
		BaseURL           string   `json:"base_url"`
		LogLevel          string   `json:"log_level"`
	} `json:"app,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
		CookieInsecure  bool     `json:"cookie_insecure"`
		CORSOrigin      string   `json:"cors_origin"`
	} `json:"server,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Redis struct {
			Address  string `json:"address"`
			Password string `json:"password"`
			DB       int    `json:"db"`
		} `json:"redis,omitempty"`

		SessionsBackend string `json:"sessions_backend"`
	} `json:"storage,omitempty"`

	RateLimit struct {
		Disabled    bool     `json:"disabled"`
		MaxRequests int      `json:"max_requests"`
		Window      Duration `json:"window"`
	} `json:"rate_limit,omitempty"`

	Workers struct {
		SessionSweepInterval Duration `json:"session_sweep_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:      jsonCfg.App.TokenSignKey,
			TokenDuration:     time.Duration(jsonCfg.App.TokenDuration),
			BcryptCost:        jsonCfg.App.BcryptCost,
			MaxMessagesPerDay: jsonCfg.App.MaxMessagesPerDay,
			MaxActiveRides:    jsonCfg.App.MaxActiveRides,
			BaseURL:           jsonCfg.App.BaseURL,
			LogLevel:          jsonCfg.App.LogLevel,
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
			CookieInsecure:  jsonCfg.Server.CookieInsecure,
			CORSOrigin:      jsonCfg.Server.CORSOrigin,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Redis: Redis{
				Address:  jsonCfg.Storage.Redis.Address,
				Password: jsonCfg.Storage.Redis.Password,
				DB:       jsonCfg.Storage.Redis.DB,
			},
			SessionsBackend: jsonCfg.Storage.SessionsBackend,
		},
		RateLimit: RateLimit{
			Disabled:    jsonCfg.RateLimit.Disabled,
			MaxRequests: jsonCfg.RateLimit.MaxRequests,
			Window:      time.Duration(jsonCfg.RateLimit.Window),
		},
		Workers: Workers{
			SessionSweepInterval: time.Duration(jsonCfg.Workers.SessionSweepInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as from integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
