// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/campus-ride/internal/apperr"
)

var (
	ErrInvalidCredentials = apperr.Unauthenticated("invalid credentials")
	ErrEmailNotVerified   = apperr.Forbidden("email is not verified")
	ErrEmailTaken         = apperr.Conflict("email is already registered")
	ErrNotUniversityEmail = apperr.Validation("validation failed", map[string]string{"email": "you must use a university email"})
	ErrInvalidVerifyToken = apperr.Validation("invalid verification token", nil)
	ErrUnauthenticated    = apperr.Unauthenticated("invalid or expired token")
	ErrUserNotFound       = apperr.NotFound("user not found")

	ErrRideNotFound       = apperr.NotFound("ride not found")
	ErrRideNotActive      = apperr.Conflict("ride is not active")
	ErrOwnRide            = apperr.Conflict("cannot join your own ride")
	ErrNoSeatsAvailable   = apperr.Conflict("no seats available")
	ErrAlreadyRequested   = apperr.Conflict("already requested to join this ride")
	ErrActiveRidesLimit   = apperr.Conflict("active rides limit reached")
	ErrNotRideDriver      = apperr.Forbidden("only the driver can update the ride")
	ErrDailyMessagesLimit = apperr.Conflict("daily message limit reached")
	ErrReceiverNotFound   = apperr.NotFound("receiver or ride not found")

	ErrStorage = errors.New("storage failure")
)

// internal wraps an unexpected collaborator failure so that it is answered
// with a generic 500 but logged with its cause.
func internal(err error) error {
	return apperr.Internal(ErrStorage.Error(), err)
}
