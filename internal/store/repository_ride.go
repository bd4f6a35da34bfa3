// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/campus-ride/internal/logger"
	"github.com/MKhiriev/campus-ride/models"
	"github.com/jackc/pgerrcode"
)

// rideRepository is the PostgreSQL-backed implementation of
// [RideRepository] over the "rides" and "ride_passengers" tables.
type rideRepository struct {
	*DB
	logger *logger.Logger
}

// NewRideRepository constructs a [RideRepository] backed by db.
func NewRideRepository(db *DB, logger *logger.Logger) RideRepository {
	logger.Debug().Msg("creating ride repository")
	return &rideRepository{
		DB:     db,
		logger: logger,
	}
}

func scanRide(row rowScanner, ride *models.Ride, extra ...any) error {
	var status string
	dest := []any{
		&ride.RideID, &ride.DriverID, &ride.OriginLat, &ride.OriginLng, &ride.OriginText,
		&ride.DestLat, &ride.DestLng, &ride.DestText, &ride.ScheduleTime,
		&ride.DaysBitmask, &ride.SeatsAvailable, &ride.Description, &status,
		&ride.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}
	ride.Status = models.RideStatus(status)
	return nil
}

func (r *rideRepository) CreateRide(ctx context.Context, ride models.Ride) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateRideQuery(ride)
	if err != nil {
		log.Err(err).Str("func", "*rideRepository.CreateRide").Msg("failed to build query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var rideID int64
	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&rideID); err != nil {
		log.Err(err).
			Str("func", "*rideRepository.CreateRide").
			Int64("driver_id", ride.DriverID).
			Msg("error creating ride")

		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return 0, ErrReferencedRowMissing
		}
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return rideID, nil
}

func (r *rideRepository) CountActiveRides(ctx context.Context, driverID int64) (int, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountActiveRidesQuery(driverID)
	if err != nil {
		log.Err(err).Str("func", "*rideRepository.CountActiveRides").Msg("failed to build query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", "*rideRepository.CountActiveRides").Int64("driver_id", driverID).Msg("error counting rides")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

func (r *rideRepository) SearchRides(ctx context.Context, search models.RideSearch, limit uint64) ([]models.RideListing, error) {
	query, args, err := buildSearchRidesQuery(search, limit)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*rideRepository.SearchRides").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryListings(ctx, "*rideRepository.SearchRides", query, args)
}

func (r *rideRepository) ListDriverRides(ctx context.Context, driverID int64) ([]models.RideListing, error) {
	query, args, err := buildListDriverRidesQuery(driverID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*rideRepository.ListDriverRides").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryListings(ctx, "*rideRepository.ListDriverRides", query, args)
}

func (r *rideRepository) queryListings(ctx context.Context, funcName, query string, args []any) ([]models.RideListing, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	listings := make([]models.RideListing, 0)
	for rows.Next() {
		var l models.RideListing
		if err = scanRide(rows, &l.Ride, &l.DriverName, &l.DriverAvatar, &l.IsPremium, &l.PassengersCount); err != nil {
			log.Err(err).Str("func", funcName).Msg("failed to scan ride row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		listings = append(listings, l)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error iterating ride rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return listings, nil
}

func (r *rideRepository) FindRideByID(ctx context.Context, rideID int64) (models.RideDetails, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindRideByIDQuery(rideID)
	if err != nil {
		log.Err(err).Str("func", "*rideRepository.FindRideByID").Msg("failed to build query")
		return models.RideDetails{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var d models.RideDetails
	err = scanRide(r.DB.QueryRowContext(ctx, query, args...), &d.Ride,
		&d.DriverName, &d.DriverAvatar, &d.Instagram, &d.Phone, &d.IsPremium, &d.PassengersCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RideDetails{}, ErrRideNotFound
		}
		log.Err(err).Str("func", "*rideRepository.FindRideByID").Int64("ride_id", rideID).Msg("error finding ride")
		return models.RideDetails{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return d, nil
}

// CreateJoinRequest inserts a join request.
//
// Error handling:
//   - unique_violation (23505) → [ErrAlreadyRequested].
//   - foreign_key_violation (23503) → [ErrRideNotFound].
func (r *rideRepository) CreateJoinRequest(ctx context.Context, passenger models.RidePassenger) (models.RidePassenger, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateJoinRequestQuery(passenger)
	if err != nil {
		log.Err(err).Str("func", "*rideRepository.CreateJoinRequest").Msg("failed to build query")
		return models.RidePassenger{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&passenger.RequestID, &passenger.CreatedAt); err != nil {
		log.Err(err).
			Str("func", "*rideRepository.CreateJoinRequest").
			Int64("ride_id", passenger.RideID).
			Int64("user_id", passenger.UserID).
			Msg("error creating join request")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.RidePassenger{}, ErrAlreadyRequested
		case pgerrcode.ForeignKeyViolation:
			return models.RidePassenger{}, ErrRideNotFound
		default:
			return models.RidePassenger{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return passenger, nil
}

func (r *rideRepository) UpdateRideStatus(ctx context.Context, rideID int64, status models.RideStatus) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateRideStatusQuery(rideID, status)
	if err != nil {
		log.Err(err).Str("func", "*rideRepository.UpdateRideStatus").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.execContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*rideRepository.UpdateRideStatus").Int64("ride_id", rideID).Msg("error updating ride status")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrRideNotFound
	}

	return nil
}
