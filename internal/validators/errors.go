// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"errors"

	"github.com/MKhiriev/campus-ride/internal/apperr"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrValidationFailed is the error every failed request validation
	// matches with errors.Is. Field messages are attached with WithFields.
	ErrValidationFailed = apperr.Validation("validation failed", nil)
)

// Field messages reported to the caller.
const (
	msgNameRequired       = "name is required"
	msgEmailRequired      = "email is required"
	msgEmailInvalid       = "email is invalid"
	msgPasswordRequired   = "password is required"
	msgPasswordTooShort   = "password must be at least 8 characters"
	msgOriginRequired     = "origin is required"
	msgDestRequired       = "destination is required"
	msgScheduleRequired   = "schedule time is required"
	msgScheduleInvalid    = "schedule time must be HH:MM"
	msgSeatsOutOfRange    = "seats must be between 1 and 8"
	msgDaysOutOfRange     = "days bitmask must be between 0 and 127"
	msgCoordinateRange    = "coordinate is out of range"
	msgStatusRequired     = "status is required"
	msgStatusInvalid      = "status must be active, completed or cancelled"
	msgReceiverRequired   = "receiver is required"
	msgReceiverIsSender   = "cannot send a message to yourself"
	msgContentRequired    = "content is required"
	msgContentTooLong     = "content is too long"
	msgTimeInvalid        = "time must be HH:MM"
	msgDayOutOfRange      = "day must be between 0 and 6"
	msgDescriptionTooLong = "description is too long"
)
