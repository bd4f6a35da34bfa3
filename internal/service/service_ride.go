// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/MKhiriev/campus-ride/internal/config"
	"github.com/MKhiriev/campus-ride/internal/logger"
	"github.com/MKhiriev/campus-ride/internal/store"
	"github.com/MKhiriev/campus-ride/models"
)

// searchLimit caps the number of rides returned by a search.
const searchLimit = 50

type rideService struct {
	rideRepository store.RideRepository

	// maxActiveRides caps the active rides a driver may offer; zero disables
	// the cap.
	maxActiveRides int

	logger *logger.Logger
}

func NewRideService(rideRepository store.RideRepository, cfg config.App, logger *logger.Logger) RideService {
	return &rideService{
		rideRepository: rideRepository,
		maxActiveRides: cfg.MaxActiveRides,
		logger:         logger,
	}
}

// Create stores a new active ride offered by driverID. Omitted seats default
// to one and omitted days to none.
func (r *rideService) Create(ctx context.Context, driverID int64, req models.NewRideRequest) (int64, error) {
	log := logger.FromContext(ctx)

	if r.maxActiveRides > 0 {
		active, err := r.rideRepository.CountActiveRides(ctx, driverID)
		if err != nil {
			log.Err(err).Str("func", "*rideService.Create").Msg("counting active rides failed")
			return 0, internal(err)
		}
		if active >= r.maxActiveRides {
			return 0, ErrActiveRidesLimit
		}
	}

	ride := models.Ride{
		DriverID:       driverID,
		OriginLat:      req.OriginLat,
		OriginLng:      req.OriginLng,
		OriginText:     strings.TrimSpace(req.OriginText),
		DestLat:        req.DestLat,
		DestLng:        req.DestLng,
		DestText:       strings.TrimSpace(req.DestText),
		ScheduleTime:   req.ScheduleTime,
		SeatsAvailable: 1,
		Description:    req.Description,
		Status:         models.RideStatusActive,
	}
	if req.SeatsAvailable != nil {
		ride.SeatsAvailable = *req.SeatsAvailable
	}
	if req.DaysBitmask != nil {
		ride.DaysBitmask = *req.DaysBitmask
	}

	rideID, err := r.rideRepository.CreateRide(ctx, ride)
	if err != nil {
		log.Err(err).Str("func", "*rideService.Create").Msg("ride creation failed")
		return 0, internal(err)
	}

	log.Info().Str("func", "*rideService.Create").Int64("ride_id", rideID).Msg("ride created")
	return rideID, nil
}

// Search returns the newest active rides matching search.
func (r *rideService) Search(ctx context.Context, search models.RideSearch) ([]models.RideListing, error) {
	rides, err := r.rideRepository.SearchRides(ctx, search, searchLimit)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*rideService.Search").Msg("ride search failed")
		return nil, internal(err)
	}
	return rides, nil
}

func (r *rideService) Get(ctx context.Context, rideID int64) (models.RideDetails, error) {
	ride, err := r.rideRepository.FindRideByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, store.ErrRideNotFound) {
			return models.RideDetails{}, ErrRideNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*rideService.Get").Msg("ride lookup failed")
		return models.RideDetails{}, internal(err)
	}
	return ride, nil
}

func (r *rideService) MyRides(ctx context.Context, driverID int64) ([]models.RideListing, error) {
	rides, err := r.rideRepository.ListDriverRides(ctx, driverID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*rideService.MyRides").Msg("listing driver rides failed")
		return nil, internal(err)
	}
	return rides, nil
}

// Join files a pending request of userID to ride rideID.
//
// The ride must exist and be active, must not be driven by userID and must
// have fewer accepted passengers than seats. A second request of the same
// user is rejected.
func (r *rideService) Join(ctx context.Context, userID, rideID int64) (models.RidePassenger, error) {
	log := logger.FromContext(ctx)

	ride, err := r.Get(ctx, rideID)
	if err != nil {
		return models.RidePassenger{}, err
	}

	switch {
	case ride.Status != models.RideStatusActive:
		return models.RidePassenger{}, ErrRideNotActive
	case ride.DriverID == userID:
		return models.RidePassenger{}, ErrOwnRide
	case ride.PassengersCount >= ride.SeatsAvailable:
		return models.RidePassenger{}, ErrNoSeatsAvailable
	}

	request, err := r.rideRepository.CreateJoinRequest(ctx, models.RidePassenger{
		RideID: rideID,
		UserID: userID,
		Status: models.PassengerStatusPending,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyRequested):
			return models.RidePassenger{}, ErrAlreadyRequested
		case errors.Is(err, store.ErrRideNotFound):
			return models.RidePassenger{}, ErrRideNotFound
		}
		log.Err(err).Str("func", "*rideService.Join").Msg("join request creation failed")
		return models.RidePassenger{}, internal(err)
	}

	log.Info().Str("func", "*rideService.Join").Int64("ride_id", rideID).Int64("request_id", request.RequestID).Msg("join requested")
	return request, nil
}

// UpdateStatus moves a ride to req.Status. Only the driver may do so.
func (r *rideService) UpdateStatus(ctx context.Context, userID, rideID int64, req models.RideStatusRequest) error {
	log := logger.FromContext(ctx)

	ride, err := r.Get(ctx, rideID)
	if err != nil {
		return err
	}
	if ride.DriverID != userID {
		return ErrNotRideDriver
	}

	if err = r.rideRepository.UpdateRideStatus(ctx, rideID, req.Status); err != nil {
		if errors.Is(err, store.ErrRideNotFound) {
			return ErrRideNotFound
		}
		log.Err(err).Str("func", "*rideService.UpdateStatus").Msg("ride status update failed")
		return internal(err)
	}

	log.Info().Str("func", "*rideService.UpdateStatus").Int64("ride_id", rideID).Str("status", string(req.Status)).Msg("ride status updated")
	return nil
}
