// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/campus-ride/internal/config"
	"github.com/MKhiriev/campus-ride/internal/logger"
	"github.com/MKhiriev/campus-ride/internal/store"
	"github.com/MKhiriev/campus-ride/models"
)

type Services struct {
	AuthService    AuthService
	RideService    RideService
	MessageService MessageService
	AppInfoService AppInfoService
}

// NewServices builds the services over storages. Every service is wrapped
// with its validation decorator.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthValidationService().Wrap(
			NewAuthService(storages.UserRepository, storages.SessionStore, cfg.App, logger),
		),
		RideService: NewRideValidationService().Wrap(
			NewRideService(storages.RideRepository, cfg.App, logger),
		),
		MessageService: NewMessageValidationService().Wrap(
			NewMessageService(storages.MessageRepository, cfg.App, logger),
		),
		AppInfoService: NewAppInfoService(buildInfo),
	}
}
