// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed Go client for the campus-ride JSON API.
//
// The primary abstraction is [APIClient]. The package ships an HTTP/REST
// implementation ([NewHTTPAPIClient]) built on resty that unwraps the
// response envelope and turns error envelopes into [*APIError].
//
// APIError matches the sentinel values defined in errors.go by status code so
// that callers can use [errors.Is] (e.g. [ErrUnauthorized] for 401,
// [ErrConflict] for 409).
package adapter

import (
	"context"

	"github.com/MKhiriev/campus-ride/models"
)

// APIClient talks to a campus-ride server on behalf of one user. The token
// returned by Login is kept by the client and sent as a bearer token on
// every later request.
type APIClient interface {
	SetToken(token string)
	Token() string

	// Register creates an account and returns its id. The account must be
	// verified before Login succeeds.
	Register(ctx context.Context, req models.RegisterRequest) (int64, error)

	// VerifyEmail redeems a verification token.
	VerifyEmail(ctx context.Context, token string) (int64, error)

	// Login authenticates and stores the issued token.
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error)

	// Logout revokes the stored token and forgets it.
	Logout(ctx context.Context) error

	Me(ctx context.Context) (models.User, error)

	SearchRides(ctx context.Context, search models.RideSearch) ([]models.RideListing, error)
	GetRide(ctx context.Context, rideID int64) (models.RideDetails, error)
	MyRides(ctx context.Context) ([]models.RideListing, error)
	CreateRide(ctx context.Context, req models.NewRideRequest) (int64, error)
	JoinRide(ctx context.Context, rideID int64) (models.JoinResponse, error)
	UpdateRideStatus(ctx context.Context, rideID int64, status models.RideStatus) error

	SendMessage(ctx context.Context, req models.NewMessageRequest) (int64, error)
	Chats(ctx context.Context) ([]models.Chat, error)
	Conversation(ctx context.Context, otherUserID int64) ([]models.ConversationMessage, error)

	// Version returns the build information of the server.
	Version(ctx context.Context) (models.BuildInfoResponse, error)
}
