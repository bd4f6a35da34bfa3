// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// RideStatus is the lifecycle state of a ride.
type RideStatus string

const (
	RideStatusActive    RideStatus = "active"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"
)

// Valid reports whether s is one of the known ride states.
func (s RideStatus) Valid() bool {
	switch s {
	case RideStatusActive, RideStatusCompleted, RideStatusCancelled:
		return true
	}
	return false
}

// PassengerStatus is the state of a join request.
type PassengerStatus string

const (
	PassengerStatusPending  PassengerStatus = "pending"
	PassengerStatusAccepted PassengerStatus = "accepted"
	PassengerStatusRejected PassengerStatus = "rejected"
)

// Ride is a scheduled, possibly recurring trip offered by a driver.
type Ride struct {
	RideID   int64 `json:"id"`
	DriverID int64 `json:"driver_id"`

	OriginLat  *float64 `json:"origin_lat"`
	OriginLng  *float64 `json:"origin_lng"`
	OriginText string   `json:"origin_text"`
	DestLat    *float64 `json:"dest_lat"`
	DestLng    *float64 `json:"dest_lng"`
	DestText   string   `json:"dest_text"`

	// ScheduleTime is the departure time of day as "HH:MM".
	ScheduleTime string `json:"schedule_time"`

	// DaysBitmask has bit 1<<d set when the ride runs on weekday d
	// (0 is Sunday).
	DaysBitmask int `json:"days_bitmask"`

	SeatsAvailable int        `json:"seats_available"`
	Description    *string    `json:"description"`
	Status         RideStatus `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Ride model.
func (r Ride) TableName() string {
	return "rides"
}

// RunsOn reports whether the ride runs on weekday day.
func (r Ride) RunsOn(day int) bool {
	if day < 0 || day > 6 {
		return false
	}
	return r.DaysBitmask&(1<<day) != 0
}

// RideListing is a ride as returned by search and listing endpoints.
type RideListing struct {
	Ride

	DriverName      string  `json:"driver_name,omitempty"`
	DriverAvatar    *string `json:"driver_avatar,omitempty"`
	IsPremium       bool    `json:"is_premium"`
	PassengersCount int     `json:"passengers_count"`
}

// RideDetails is a single ride together with the driver's contact data.
type RideDetails struct {
	Ride

	DriverName      string  `json:"driver_name"`
	DriverAvatar    *string `json:"driver_avatar"`
	Instagram       *string `json:"instagram"`
	Phone           *string `json:"phone"`
	IsPremium       bool    `json:"is_premium"`
	PassengersCount int     `json:"passengers_count"`
}

// RidePassenger is a request of a user to join a ride.
type RidePassenger struct {
	RequestID int64           `json:"id"`
	RideID    int64           `json:"ride_id"`
	UserID    int64           `json:"user_id"`
	Status    PassengerStatus `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the RidePassenger model.
func (p RidePassenger) TableName() string {
	return "ride_passengers"
}

// RideSearch holds the optional filters of a ride search. Nil fields are not
// applied.
type RideSearch struct {
	Origin      *string
	Destination *string
	// Time filters rides departing at or after the given "HH:MM".
	Time *string
	// Day filters rides running on the given weekday (0..6).
	Day *int
}
