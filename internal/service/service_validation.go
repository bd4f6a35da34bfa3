// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/campus-ride/internal/validators"
	"github.com/MKhiriev/campus-ride/models"
)

// AuthValidationService validates request bodies before handing them to the
// wrapped AuthService.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{validator: validators.NewRequestValidator()}
}

func (v *AuthValidationService) Wrap(inner AuthService) AuthService {
	v.inner = inner
	return v
}

func (v *AuthValidationService) Register(ctx context.Context, req models.RegisterRequest) (int64, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return 0, err
	}
	return v.inner.Register(ctx, req)
}

func (v *AuthValidationService) Login(ctx context.Context, req models.LoginRequest, client models.ClientInfo) (models.LoginResult, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.LoginResult{}, err
	}
	return v.inner.Login(ctx, req, client)
}

func (v *AuthValidationService) VerifyEmail(ctx context.Context, token string) (int64, error) {
	return v.inner.VerifyEmail(ctx, token)
}

func (v *AuthValidationService) Logout(ctx context.Context, token string) error {
	return v.inner.Logout(ctx, token)
}

func (v *AuthValidationService) Me(ctx context.Context, userID int64) (models.User, error) {
	return v.inner.Me(ctx, userID)
}

func (v *AuthValidationService) Authenticate(ctx context.Context, token string) (int64, error) {
	return v.inner.Authenticate(ctx, token)
}

// RideValidationService validates ride requests and search filters before
// they reach the wrapped RideService.
type RideValidationService struct {
	inner     RideService
	validator validators.Validator
}

func NewRideValidationService() RideServiceWrapper {
	return &RideValidationService{validator: validators.NewRequestValidator()}
}

func (v *RideValidationService) Wrap(inner RideService) RideService {
	v.inner = inner
	return v
}

func (v *RideValidationService) Create(ctx context.Context, driverID int64, req models.NewRideRequest) (int64, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return 0, err
	}
	return v.inner.Create(ctx, driverID, req)
}

func (v *RideValidationService) Search(ctx context.Context, search models.RideSearch) ([]models.RideListing, error) {
	if err := v.validator.Validate(ctx, search); err != nil {
		return nil, err
	}
	return v.inner.Search(ctx, search)
}

func (v *RideValidationService) Get(ctx context.Context, rideID int64) (models.RideDetails, error) {
	return v.inner.Get(ctx, rideID)
}

func (v *RideValidationService) MyRides(ctx context.Context, driverID int64) ([]models.RideListing, error) {
	return v.inner.MyRides(ctx, driverID)
}

func (v *RideValidationService) Join(ctx context.Context, userID, rideID int64) (models.RidePassenger, error) {
	return v.inner.Join(ctx, userID, rideID)
}

func (v *RideValidationService) UpdateStatus(ctx context.Context, userID, rideID int64, req models.RideStatusRequest) error {
	if err := v.validator.Validate(ctx, req); err != nil {
		return err
	}
	return v.inner.UpdateStatus(ctx, userID, rideID, req)
}

// MessageValidationService validates outgoing messages before they reach the
// wrapped MessageService.
type MessageValidationService struct {
	inner     MessageService
	validator validators.Validator
}

func NewMessageValidationService() MessageServiceWrapper {
	return &MessageValidationService{validator: validators.NewRequestValidator()}
}

func (v *MessageValidationService) Wrap(inner MessageService) MessageService {
	v.inner = inner
	return v
}

func (v *MessageValidationService) Send(ctx context.Context, senderID int64, req models.NewMessageRequest) (int64, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return 0, err
	}
	if err := validators.ValidateSender(senderID, req); err != nil {
		return 0, err
	}
	return v.inner.Send(ctx, senderID, req)
}

func (v *MessageValidationService) Chats(ctx context.Context, userID int64) ([]models.Chat, error) {
	return v.inner.Chats(ctx, userID)
}

func (v *MessageValidationService) Conversation(ctx context.Context, userID, otherID int64) ([]models.ConversationMessage, error) {
	return v.inner.Conversation(ctx, userID, otherID)
}
