// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/campus-ride/internal/logger"
	"github.com/MKhiriev/campus-ride/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup and e-mail verification against the
// "users" and "universities" tables.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.UserID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.UniversityID,
		&u.Career, &u.Instagram, &u.AvatarURL, &u.IsPremium, &u.PremiumUntil,
		&u.Verified, &u.VerificationToken, &u.CreatedAt,
	)
	return u, err
}

// CreateUser persists a new user record and returns it with the
// server-assigned UserID and CreatedAt.
//
// Error handling:
//   - unique_violation (23505) → [ErrEmailAlreadyExists].
//   - foreign_key_violation (23503) → [ErrReferencedRowMissing].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateUserQuery(user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	// create user in db
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&user.UserID, &user.CreatedAt)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		case pgerrcode.ForeignKeyViolation:
			return models.User{}, ErrReferencedRowMissing
		default:
			return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return user, nil
}

// FindUserByEmail retrieves the user registered with email.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByEmail", sq.Eq{"email": email})
}

// FindUserByID retrieves the user with userID.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByID", sq.Eq{"user_id": userID})
}

func (r *userRepository) findUser(ctx context.Context, funcName string, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserQuery(where)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", funcName).Msg("error finding user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// FindUniversityByDomain returns the university owning the e-mail domain.
// Domains are compared lower-cased.
func (r *userRepository) FindUniversityByDomain(ctx context.Context, domain string) (models.University, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUniversityByDomainQuery(domain)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUniversityByDomain").Msg("failed to build query")
		return models.University{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var university models.University
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&university.UniversityID, &university.Name, &university.Domain)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.University{}, ErrUniversityNotFound
		}
		log.Err(err).Str("func", "*userRepository.FindUniversityByDomain").Str("domain", domain).Msg("error finding university")
		return models.University{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return university, nil
}

// VerifyEmail marks the owner of token verified and clears the token, so a
// verification link works only once.
func (r *userRepository) VerifyEmail(ctx context.Context, token string) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildVerifyEmailQuery(token)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.VerifyEmail").Msg("failed to build query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var userID int64
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrVerificationTokenNotFound
		}
		log.Err(err).Str("func", "*userRepository.VerifyEmail").Msg("error verifying email")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return userID, nil
}
