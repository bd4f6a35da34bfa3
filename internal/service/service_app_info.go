// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/campus-ride/models"
)

const unknownBuildValue = "N/A"

// AppInfoService reports the build metadata of the running server.
type AppInfoService interface {
	BuildInfo(ctx context.Context) models.BuildInfoResponse
}

type appInfoService struct {
	info models.AppBuildInfo
}

// NewAppInfoService returns an AppInfoService for info. Empty values are
// reported as "N/A".
func NewAppInfoService(info models.AppBuildInfo) AppInfoService {
	return &appInfoService{info: info}
}

func (s *appInfoService) BuildInfo(ctx context.Context) models.BuildInfoResponse {
	return models.BuildInfoResponse{
		Version: orUnknown(s.info.BuildVersion()),
		Date:    orUnknown(s.info.BuildDate()),
		Commit:  orUnknown(s.info.BuildCommit()),
	}
}

func orUnknown(v string) string {
	if v == "" {
		return unknownBuildValue
	}
	return v
}
