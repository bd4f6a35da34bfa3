// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/campus-ride/models"
)

// AuthService covers account lifecycle and request authentication.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (int64, error)
	Login(ctx context.Context, req models.LoginRequest, client models.ClientInfo) (models.LoginResult, error)
	VerifyEmail(ctx context.Context, token string) (int64, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, userID int64) (models.User, error)

	// Authenticate returns the id of the user owning token. Every rejection
	// is reported as ErrUnauthenticated.
	Authenticate(ctx context.Context, token string) (int64, error)
}

type RideService interface {
	Create(ctx context.Context, driverID int64, req models.NewRideRequest) (int64, error)
	Search(ctx context.Context, search models.RideSearch) ([]models.RideListing, error)
	Get(ctx context.Context, rideID int64) (models.RideDetails, error)
	MyRides(ctx context.Context, driverID int64) ([]models.RideListing, error)
	Join(ctx context.Context, userID, rideID int64) (models.RidePassenger, error)
	UpdateStatus(ctx context.Context, userID, rideID int64, req models.RideStatusRequest) error
}

type MessageService interface {
	Send(ctx context.Context, senderID int64, req models.NewMessageRequest) (int64, error)
	Chats(ctx context.Context, userID int64) ([]models.Chat, error)
	Conversation(ctx context.Context, userID, otherID int64) ([]models.ConversationMessage, error)
}

// AuthServiceWrapper, RideServiceWrapper and MessageServiceWrapper decorate a
// service with additional behavior such as input validation.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

type RideServiceWrapper interface {
	Wrap(RideService) RideService
}

type MessageServiceWrapper interface {
	Wrap(MessageService) MessageService
}
