// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// University is an institution whose e-mail domain may register.
type University struct {
	UniversityID int64  `json:"id"`
	Name         string `json:"name"`
	Domain       string `json:"domain"`
}

// TableName returns the name of the database table
// associated with the University model.
func (u University) TableName() string {
	return "universities"
}

// User represents a registered member of a university community.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the unique identifier of the user.
	UserID int64 `json:"id"`

	Name  string `json:"name"`
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the password. Never serialized.
	PasswordHash string `json:"-"`

	Phone        *string `json:"phone"`
	UniversityID int64   `json:"university_id"`
	Career       *string `json:"career"`
	Instagram    *string `json:"instagram"`
	AvatarURL    *string `json:"avatar_url"`

	IsPremium    bool       `json:"is_premium"`
	PremiumUntil *time.Time `json:"premium_until"`

	// Verified is set once the e-mail verification link was followed.
	Verified bool `json:"verified"`

	// VerificationToken is cleared after verification. Never serialized.
	VerificationToken *string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// PremiumActive reports whether the premium subscription is in force at now.
// A premium flag without an end date never expires.
func (u User) PremiumActive(now time.Time) bool {
	if !u.IsPremium {
		return false
	}
	return u.PremiumUntil == nil || u.PremiumUntil.After(now)
}

// UserSummary is the public part of a user returned after login.
type UserSummary struct {
	UserID    int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	IsPremium bool   `json:"is_premium"`
}

// Summary returns the public part of u.
func (u User) Summary() UserSummary {
	return UserSummary{UserID: u.UserID, Name: u.Name, Email: u.Email, IsPremium: u.IsPremium}
}
