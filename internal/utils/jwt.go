// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/campus-ride/models"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenLifetime is used by EncodeToken when lifetime is zero.
const DefaultTokenLifetime = 24 * time.Hour

var (
	ErrEmptySignKey  = errors.New("empty token sign key")
	ErrMalformedJWT  = errors.New("malformed token")
	ErrInvalidJWT    = errors.New("invalid token")
	ErrExpiredJWT    = errors.New("token expired")
	ErrEmptyToken    = errors.New("empty token")
	ErrInvalidBearer = errors.New("invalid authorization header")
)

// EncodeToken signs claims with HMAC-SHA256.
//
// The resulting token carries the caller's claims plus "iat" = now and
// "exp" = now + lifetime (DefaultTokenLifetime when lifetime is zero).
// Any IssuedAt or ExpiresAt already present in claims is overwritten.
//
// Example usage:
//
//	token, err := utils.EncodeToken(models.Claims{UserID: 42, Email: "a@uni.edu"}, "secret", 0, time.Now())
func EncodeToken(claims models.Claims, signKey string, lifetime time.Duration, now time.Time) (string, error) {
	if signKey == "" {
		return "", ErrEmptySignKey
	}
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}

	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(lifetime))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return signed, nil
}

// DecodeToken verifies token and returns its claims.
//
// Validation includes:
//   - exactly three dot-separated segments
//   - HS256 as the only accepted algorithm
//   - signature check against signKey (constant-time comparison)
//   - a mandatory "exp" claim strictly after now
//
// Errors wrap ErrMalformedJWT, ErrInvalidJWT or ErrExpiredJWT.
func DecodeToken(token, signKey string, now time.Time) (models.Claims, error) {
	if token == "" {
		return models.Claims{}, ErrEmptyToken
	}
	if signKey == "" {
		return models.Claims{}, ErrEmptySignKey
	}
	if strings.Count(token, ".") != 2 {
		return models.Claims{}, ErrMalformedJWT
	}

	var claims models.Claims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	_, err := parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return []byte(signKey), nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return models.Claims{}, fmt.Errorf("%w: %w", ErrExpiredJWT, err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return models.Claims{}, fmt.Errorf("%w: %w", ErrMalformedJWT, err)
	default:
		return models.Claims{}, fmt.Errorf("%w: %w", ErrInvalidJWT, err)
	}

	// exp has second precision; the token is valid only strictly before it.
	if !now.Before(claims.ExpiresAt.Time) {
		return models.Claims{}, ErrExpiredJWT
	}

	return claims, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidBearer
	}
	return parts[1], nil
}
