// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/campus-ride/models"
)

// Field names. They match the JSON names of the request bodies, so they can
// be returned to the caller as keys of the errors object.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"

	FieldOriginText   = "origin_text"
	FieldDestText     = "dest_text"
	FieldScheduleTime = "schedule_time"
	FieldSeats        = "seats_available"
	FieldDaysBitmask  = "days_bitmask"
	FieldCoordinates  = "coordinates"
	FieldDescription  = "description"
	FieldStatus       = "status"

	FieldReceiverID = "receiver_id"
	FieldContent    = "content"

	FieldTime = "time"
	FieldDay  = "day"
)

const (
	minPasswordLength    = 8
	maxSeats             = 8
	maxDaysBitmask       = 127
	maxContentLength     = 2000
	maxDescriptionLength = 1000
)

var clockTime = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// RequestValidator validates the request bodies of the public API:
// RegisterRequest, LoginRequest, NewRideRequest, RideStatusRequest,
// NewMessageRequest and RideSearch.
type RequestValidator struct{}

// NewRequestValidator returns a RequestValidator as a Validator.
func NewRequestValidator() Validator {
	return &RequestValidator{}
}

// Validate dispatches on the dynamic type of obj; value and pointer forms are
// both accepted. It returns ErrUnsupportedType for unknown types and
// ErrUnknownField when a requested field does not belong to the type.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegister(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegister(*value, fields...)

	case models.LoginRequest:
		return v.validateLogin(value, fields...)
	case *models.LoginRequest:
		return v.validateLogin(*value, fields...)

	case models.NewRideRequest:
		return v.validateNewRide(value, fields...)
	case *models.NewRideRequest:
		return v.validateNewRide(*value, fields...)

	case models.RideStatusRequest:
		return v.validateRideStatus(value, fields...)
	case *models.RideStatusRequest:
		return v.validateRideStatus(*value, fields...)

	case models.NewMessageRequest:
		return v.validateNewMessage(value, fields...)
	case *models.NewMessageRequest:
		return v.validateNewMessage(*value, fields...)

	case models.RideSearch:
		return v.validateRideSearch(value, fields...)
	case *models.RideSearch:
		return v.validateRideSearch(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// fieldErrors collects the messages of every failed field.
type fieldErrors map[string]string

func (f fieldErrors) add(field, message string) {
	if _, ok := f[field]; !ok {
		f[field] = message
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return ErrValidationFailed.WithFields(f)
}

func (v *RequestValidator) validateRegister(req models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldPassword}
	}

	errs := fieldErrors{}
	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(req.Name) == "" {
				errs.add(FieldName, msgNameRequired)
			}
		case FieldEmail:
			checkEmail(errs, req.Email)
		case FieldPassword:
			if req.Password == "" {
				errs.add(FieldPassword, msgPasswordRequired)
			} else if utf8.RuneCountInString(req.Password) < minPasswordLength {
				errs.add(FieldPassword, msgPasswordTooShort)
			}
		default:
			return ErrUnknownField
		}
	}
	return errs.err()
}

func (v *RequestValidator) validateLogin(req models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	errs := fieldErrors{}
	for _, f := range fields {
		switch f {
		case FieldEmail:
			if strings.TrimSpace(req.Email) == "" {
				errs.add(FieldEmail, msgEmailRequired)
			}
		case FieldPassword:
			if req.Password == "" {
				errs.add(FieldPassword, msgPasswordRequired)
			}
		default:
			return ErrUnknownField
		}
	}
	return errs.err()
}

func (v *RequestValidator) validateNewRide(req models.NewRideRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOriginText, FieldDestText, FieldScheduleTime, FieldSeats, FieldDaysBitmask, FieldCoordinates, FieldDescription}
	}

	errs := fieldErrors{}
	for _, f := range fields {
		switch f {
		case FieldOriginText:
			if strings.TrimSpace(req.OriginText) == "" {
				errs.add(FieldOriginText, msgOriginRequired)
			}
		case FieldDestText:
			if strings.TrimSpace(req.DestText) == "" {
				errs.add(FieldDestText, msgDestRequired)
			}
		case FieldScheduleTime:
			switch {
			case strings.TrimSpace(req.ScheduleTime) == "":
				errs.add(FieldScheduleTime, msgScheduleRequired)
			case !clockTime.MatchString(req.ScheduleTime):
				errs.add(FieldScheduleTime, msgScheduleInvalid)
			}
		case FieldSeats:
			if req.SeatsAvailable != nil && (*req.SeatsAvailable < 1 || *req.SeatsAvailable > maxSeats) {
				errs.add(FieldSeats, msgSeatsOutOfRange)
			}
		case FieldDaysBitmask:
			if req.DaysBitmask != nil && (*req.DaysBitmask < 0 || *req.DaysBitmask > maxDaysBitmask) {
				errs.add(FieldDaysBitmask, msgDaysOutOfRange)
			}
		case FieldCoordinates:
			checkLatitude(errs, "origin_lat", req.OriginLat)
			checkLongitude(errs, "origin_lng", req.OriginLng)
			checkLatitude(errs, "dest_lat", req.DestLat)
			checkLongitude(errs, "dest_lng", req.DestLng)
		case FieldDescription:
			if req.Description != nil && utf8.RuneCountInString(*req.Description) > maxDescriptionLength {
				errs.add(FieldDescription, msgDescriptionTooLong)
			}
		default:
			return ErrUnknownField
		}
	}
	return errs.err()
}

func (v *RequestValidator) validateRideStatus(req models.RideStatusRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldStatus}
	}

	errs := fieldErrors{}
	for _, f := range fields {
		switch f {
		case FieldStatus:
			switch {
			case req.Status == "":
				errs.add(FieldStatus, msgStatusRequired)
			case !req.Status.Valid():
				errs.add(FieldStatus, msgStatusInvalid)
			}
		default:
			return ErrUnknownField
		}
	}
	return errs.err()
}

func (v *RequestValidator) validateNewMessage(req models.NewMessageRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldReceiverID, FieldContent}
	}

	errs := fieldErrors{}
	for _, f := range fields {
		switch f {
		case FieldReceiverID:
			if req.ReceiverID <= 0 {
				errs.add(FieldReceiverID, msgReceiverRequired)
			}
		case FieldContent:
			switch {
			case strings.TrimSpace(req.Content) == "":
				errs.add(FieldContent, msgContentRequired)
			case utf8.RuneCountInString(req.Content) > maxContentLength:
				errs.add(FieldContent, msgContentTooLong)
			}
		default:
			return ErrUnknownField
		}
	}
	return errs.err()
}

func (v *RequestValidator) validateRideSearch(req models.RideSearch, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTime, FieldDay}
	}

	errs := fieldErrors{}
	for _, f := range fields {
		switch f {
		case FieldTime:
			if req.Time != nil && !clockTime.MatchString(*req.Time) {
				errs.add(FieldTime, msgTimeInvalid)
			}
		case FieldDay:
			if req.Day != nil && (*req.Day < 0 || *req.Day > 6) {
				errs.add(FieldDay, msgDayOutOfRange)
			}
		default:
			return ErrUnknownField
		}
	}
	return errs.err()
}

// ValidateSender reports a field error when a message is addressed to its
// own sender.
func ValidateSender(senderID int64, req models.NewMessageRequest) error {
	if req.ReceiverID == senderID {
		return ErrValidationFailed.WithFields(map[string]string{FieldReceiverID: msgReceiverIsSender})
	}
	return nil
}

func checkEmail(errs fieldErrors, email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs.add(FieldEmail, msgEmailRequired)
		return
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		errs.add(FieldEmail, msgEmailInvalid)
	}
}

func checkLatitude(errs fieldErrors, field string, v *float64) {
	if v != nil && (*v < -90 || *v > 90) {
		errs.add(field, msgCoordinateRange)
	}
}

func checkLongitude(errs fieldErrors, field string, v *float64) {
	if v != nil && (*v < -180 || *v > 180) {
		errs.add(field, msgCoordinateRange)
	}
}
