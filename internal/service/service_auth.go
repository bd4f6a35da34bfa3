// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/campus-ride/internal/config"
	"github.com/MKhiriev/campus-ride/internal/logger"
	"github.com/MKhiriev/campus-ride/internal/store"
	"github.com/MKhiriev/campus-ride/internal/utils"
	"github.com/MKhiriev/campus-ride/models"
	"golang.org/x/crypto/bcrypt"
)

// verificationTokenBytes is the entropy of an e-mail verification token.
const verificationTokenBytes = 32

// authService is the concrete implementation of AuthService.
// Passwords are hashed with bcrypt, tokens are HS256 JWTs and every issued
// token is backed by a session so that logout can revoke it.
type authService struct {
	userRepository store.UserRepository
	sessionStore   store.SessionStore

	// tokenSignKey is the HMAC secret used to sign and verify tokens.
	tokenSignKey string

	// tokenDuration controls how long a newly issued token remains valid.
	tokenDuration time.Duration

	bcryptCost int

	// baseURL prefixes the verification link written to the log.
	baseURL string

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService constructs an AuthService over the user repository and
// session store with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, sessionStore store.SessionStore, cfg config.App, logger *logger.Logger) AuthService {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &authService{
		userRepository: userRepository,
		sessionStore:   sessionStore,
		tokenSignKey:   cfg.TokenSignKey,
		tokenDuration:  cfg.TokenDuration,
		bcryptCost:     cost,
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		now:            time.Now,
		logger:         logger,
	}
}

// Register creates an unverified account for a university e-mail address.
//
// The domain of the address must belong to a known university. The password
// is stored as a bcrypt hash and a random verification token is generated;
// the verification link is written to the log.
//
// Returns the id of the new user or:
//   - ErrNotUniversityEmail if the domain is unknown.
//   - ErrEmailTaken if the address is already registered.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (int64, error) {
	log := logger.FromContext(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	domain := email[strings.LastIndex(email, "@")+1:]

	university, err := a.userRepository.FindUniversityByDomain(ctx, domain)
	if err != nil {
		if errors.Is(err, store.ErrUniversityNotFound) {
			log.Debug().Str("func", "*authService.Register").Str("domain", domain).Msg("email domain is not a university")
			return 0, ErrNotUniversityEmail
		}
		log.Err(err).Str("func", "*authService.Register").Msg("university lookup failed")
		return 0, internal(err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.bcryptCost)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("password hashing failed")
		return 0, internal(err)
	}

	verificationToken, err := utils.RandomHex(verificationTokenBytes)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("verification token generation failed")
		return 0, internal(err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Name:              strings.TrimSpace(req.Name),
		Email:             email,
		PasswordHash:      string(passwordHash),
		Phone:             req.Phone,
		UniversityID:      university.UniversityID,
		VerificationToken: &verificationToken,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return 0, ErrEmailTaken
		}
		log.Err(err).Str("func", "*authService.Register").Msg("user creation ended with error")
		return 0, internal(err)
	}

	log.Info().
		Str("func", "*authService.Register").
		Int64("user_id", user.UserID).
		Str("verification_link", fmt.Sprintf("%s/api/auth/verify/%s", a.baseURL, verificationToken)).
		Msg("user registered")

	return user.UserID, nil
}

// Login checks the credentials, issues a token and records a session for it.
//
// Returns ErrInvalidCredentials for an unknown e-mail or a wrong password and
// ErrEmailNotVerified for accounts whose e-mail was never confirmed.
func (a *authService) Login(ctx context.Context, req models.LoginRequest, client models.ClientInfo) (models.LoginResult, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.LoginResult{}, ErrInvalidCredentials
		}
		log.Err(err).Str("func", "*authService.Login").Msg("user search by email failed")
		return models.LoginResult{}, internal(err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Debug().Str("func", "*authService.Login").Int64("user_id", user.UserID).Msg("wrong password")
		return models.LoginResult{}, ErrInvalidCredentials
	}

	if !user.Verified {
		return models.LoginResult{}, ErrEmailNotVerified
	}

	now := a.now()
	lifetime := a.tokenDuration
	if lifetime <= 0 {
		lifetime = utils.DefaultTokenLifetime
	}

	token, err := utils.EncodeToken(models.Claims{
		UserID:    user.UserID,
		Email:     user.Email,
		IsPremium: user.PremiumActive(now),
	}, a.tokenSignKey, lifetime, now)
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("token creation failed")
		return models.LoginResult{}, internal(err)
	}

	session := models.Session{
		UserID:    user.UserID,
		Token:     token,
		IPAddress: client.IPAddress,
		UserAgent: client.UserAgent,
		ExpiresAt: now.Add(lifetime),
		CreatedAt: now,
	}
	if err = a.sessionStore.Create(ctx, session); err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("session creation failed")
		return models.LoginResult{}, internal(err)
	}

	summary := user.Summary()
	summary.IsPremium = user.PremiumActive(now)

	return models.LoginResult{Token: token, User: summary, Session: session}, nil
}

// VerifyEmail marks the owner of token as verified.
func (a *authService) VerifyEmail(ctx context.Context, token string) (int64, error) {
	log := logger.FromContext(ctx)

	if token == "" {
		return 0, ErrInvalidVerifyToken
	}

	userID, err := a.userRepository.VerifyEmail(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrVerificationTokenNotFound) {
			return 0, ErrInvalidVerifyToken
		}
		log.Err(err).Str("func", "*authService.VerifyEmail").Msg("email verification failed")
		return 0, internal(err)
	}

	log.Info().Str("func", "*authService.VerifyEmail").Int64("user_id", userID).Msg("email verified")
	return userID, nil
}

// Logout revokes the session of token. Unknown or empty tokens are not an
// error; a failing store is logged and swallowed so that the caller always
// gets its cookie cleared.
func (a *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := a.sessionStore.Delete(ctx, token); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Logout").Msg("session deletion failed")
	}
	return nil
}

// Me returns the profile of userID.
func (a *authService) Me(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, ErrUserNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Me").Msg("user search by id failed")
		return models.User{}, internal(err)
	}

	return user, nil
}

// Authenticate runs the gates of a protected request in order: a non-empty
// token, a valid signature, an unexpired payload and a live session.
func (a *authService) Authenticate(ctx context.Context, token string) (int64, error) {
	log := logger.FromContext(ctx)

	if token == "" {
		log.Debug().Str("func", "*authService.Authenticate").Str("gate", "token").Msg("empty token")
		return 0, ErrUnauthenticated
	}

	now := a.now()

	claims, err := utils.DecodeToken(token, a.tokenSignKey, now)
	if err != nil {
		gate := "signature"
		if errors.Is(err, utils.ErrExpiredJWT) {
			gate = "expiry"
		}
		log.Debug().Err(err).Str("func", "*authService.Authenticate").Str("gate", gate).Msg("token rejected")
		return 0, ErrUnauthenticated.Wrap(err)
	}

	session, err := a.sessionStore.Find(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			log.Debug().Str("func", "*authService.Authenticate").Str("gate", "session").Msg("no session for token")
			return 0, ErrUnauthenticated.Wrap(err)
		}
		log.Err(err).Str("func", "*authService.Authenticate").Msg("session lookup failed")
		return 0, internal(err)
	}

	if session.Expired(now) || session.UserID != claims.UserID {
		log.Debug().Str("func", "*authService.Authenticate").Str("gate", "session").Msg("session expired or owned by another user")
		return 0, ErrUnauthenticated
	}

	return claims.UserID, nil
}
