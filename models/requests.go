// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone,omitempty"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is what a successful login hands back to the transport layer.
type LoginResult struct {
	Token   string      `json:"token"`
	User    UserSummary `json:"user"`
	Session Session     `json:"-"`
}

// ClientInfo describes the client a session is issued to.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

// NewRideRequest is the body of POST /api/rides.
//
// SeatsAvailable and DaysBitmask are pointers so that an omitted field can
// be told apart from an explicit zero.
type NewRideRequest struct {
	OriginLat      *float64 `json:"origin_lat,omitempty"`
	OriginLng      *float64 `json:"origin_lng,omitempty"`
	OriginText     string   `json:"origin_text"`
	DestLat        *float64 `json:"dest_lat,omitempty"`
	DestLng        *float64 `json:"dest_lng,omitempty"`
	DestText       string   `json:"dest_text"`
	ScheduleTime   string   `json:"schedule_time"`
	DaysBitmask    *int     `json:"days_bitmask,omitempty"`
	SeatsAvailable *int     `json:"seats_available,omitempty"`
	Description    *string  `json:"description,omitempty"`
}

// RideStatusRequest is the body of PUT /api/rides/{id}/status.
type RideStatusRequest struct {
	Status RideStatus `json:"status"`
}

// NewMessageRequest is the body of POST /api/messages.
type NewMessageRequest struct {
	ReceiverID int64  `json:"receiver_id"`
	Content    string `json:"content"`
	RideID     *int64 `json:"ride_id,omitempty"`
}

// UserIDResponse is returned by registration.
type UserIDResponse struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message,omitempty"`
}

// RideIDResponse is returned by ride creation.
type RideIDResponse struct {
	RideID int64 `json:"ride_id"`
}

// JoinResponse is returned by a join request.
type JoinResponse struct {
	RequestID int64           `json:"request_id"`
	Status    PassengerStatus `json:"status"`
}

// MessageIDResponse is returned by message sending.
type MessageIDResponse struct {
	MessageID int64 `json:"message_id"`
}
