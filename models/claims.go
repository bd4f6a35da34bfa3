// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/golang-jwt/jwt/v5"

// Claims is the payload of an authentication token.
//
// The caller-supplied part is UserID, Email and IsPremium. IssuedAt and
// ExpiresAt of the embedded [jwt.RegisteredClaims] are set by the encoder.
type Claims struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	IsPremium bool   `json:"is_premium"`

	jwt.RegisteredClaims
}
