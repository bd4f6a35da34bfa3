// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/campus-ride/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts and the universities allowed to
// register.
type UserRepository interface {
	// CreateUser inserts user and returns it with UserID and CreatedAt set.
	// Returns [ErrEmailAlreadyExists] on a duplicate e-mail.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByEmail returns [ErrUserNotFound] when no user has email.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// FindUserByID returns [ErrUserNotFound] when no user has userID.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	// FindUniversityByDomain returns [ErrUniversityNotFound] for unknown
	// e-mail domains.
	FindUniversityByDomain(ctx context.Context, domain string) (models.University, error)
	// VerifyEmail marks the owner of token as verified, clears the token and
	// returns the owner's id. Returns [ErrVerificationTokenNotFound] for
	// unknown tokens.
	VerifyEmail(ctx context.Context, token string) (int64, error)
}

// SessionStore keeps issued login sessions. Sessions are looked up by the
// raw token; implementations only ever persist a digest of it.
type SessionStore interface {
	Create(ctx context.Context, session models.Session) error
	// Find returns [ErrSessionNotFound] when token has no session.
	Find(ctx context.Context, token string) (models.Session, error)
	// Delete removes the session of token. Deleting a missing session is
	// not an error.
	Delete(ctx context.Context, token string) error
	// DeleteExpired removes every session expired at now and reports how
	// many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// RideRepository persists rides and join requests.
type RideRepository interface {
	// CreateRide inserts ride and returns its id.
	CreateRide(ctx context.Context, ride models.Ride) (int64, error)
	// CountActiveRides counts the active rides of driverID.
	CountActiveRides(ctx context.Context, driverID int64) (int, error)
	// SearchRides lists active rides matching search, newest first.
	SearchRides(ctx context.Context, search models.RideSearch, limit uint64) ([]models.RideListing, error)
	// FindRideByID returns [ErrRideNotFound] when rideID does not exist.
	FindRideByID(ctx context.Context, rideID int64) (models.RideDetails, error)
	// ListDriverRides lists every ride of driverID, newest first.
	ListDriverRides(ctx context.Context, driverID int64) ([]models.RideListing, error)
	// CreateJoinRequest inserts passenger and returns it with RequestID and
	// CreatedAt set. Returns [ErrAlreadyRequested] when the user already
	// asked to join the ride.
	CreateJoinRequest(ctx context.Context, passenger models.RidePassenger) (models.RidePassenger, error)
	// UpdateRideStatus returns [ErrRideNotFound] when rideID does not exist.
	UpdateRideStatus(ctx context.Context, rideID int64, status models.RideStatus) error
}

// MessageRepository persists direct messages.
type MessageRepository interface {
	// CreateMessage inserts message and returns its id.
	CreateMessage(ctx context.Context, message models.Message) (int64, error)
	// CountSentSince counts the messages senderID sent at or after since.
	CountSentSince(ctx context.Context, senderID int64, since time.Time) (int, error)
	// Conversation returns up to limit messages exchanged between userID and
	// otherID, newest first.
	Conversation(ctx context.Context, userID, otherID int64, limit uint64) ([]models.ConversationMessage, error)
	// Chats lists the conversation partners of userID, most recent first.
	Chats(ctx context.Context, userID int64) ([]models.Chat, error)
	// MarkRead marks every unread message from senderID to receiverID as
	// read and reports how many changed.
	MarkRead(ctx context.Context, receiverID, senderID int64) (int64, error)
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
