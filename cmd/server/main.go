// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/campus-ride/internal/config"
	"github.com/MKhiriev/campus-ride/internal/handler"
	"github.com/MKhiriev/campus-ride/internal/logger"
	"github.com/MKhiriev/campus-ride/internal/server"
	"github.com/MKhiriev/campus-ride/internal/service"
	"github.com/MKhiriev/campus-ride/internal/store"
	"github.com/MKhiriev/campus-ride/internal/workers"
	"github.com/MKhiriev/campus-ride/models"
	"github.com/redis/go-redis/v9"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("campus-ride-server")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	// an untyped nil keeps every Redis-backed component switched off
	var redisClient redis.UniversalClient
	if cfg.Storage.Redis.Address != "" {
		client, redisErr := store.NewRedisClient(ctx, cfg.Storage.Redis, log)
		if redisErr != nil {
			log.Fatal().Err(redisErr).Msg("error connecting redis")
		}
		defer client.Close()
		redisClient = client
	}

	storages, err := store.NewStorages(db, redisClient, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	services := service.NewServices(storages, *cfg, buildInfo, log)

	handlers, err := handler.NewHandlers(services, redisClient, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, workers.NewWorkers(storages, cfg.Workers, log), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}

func printBuildInfo(info models.AppBuildInfo) {
	resp := service.NewAppInfoService(info).BuildInfo(context.Background())

	fmt.Printf("Build version: %s\n", resp.Version)
	fmt.Printf("Build date: %s\n", resp.Date)
	fmt.Printf("Build commit: %s\n", resp.Commit)
}
