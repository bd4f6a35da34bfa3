// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/campus-ride/models"
)

// psql builds PostgreSQL statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var userColumns = []string{
	"user_id", "name", "email", "password_hash", "phone", "university_id",
	"career", "instagram", "avatar_url", "is_premium", "premium_until",
	"verified", "verification_token", "created_at",
}

var sessionColumns = []string{
	"session_id", "user_id", "ip_address", "user_agent", "expires_at", "created_at",
}

var rideColumns = []string{
	"r.ride_id", "r.driver_id", "r.origin_lat", "r.origin_lng", "r.origin_text",
	"r.dest_lat", "r.dest_lng", "r.dest_text", "r.schedule_time",
	"r.days_bitmask", "r.seats_available", "r.description", "r.status",
	"r.created_at",
}

// acceptedPassengersColumn counts the accepted passengers of the ride
// aliased as r.
const acceptedPassengersColumn = `(SELECT COUNT(*) FROM ride_passengers rp
		WHERE rp.ride_id = r.ride_id AND rp.status = 'accepted') AS passengers_count`

// selectChats returns, for every conversation partner of $1, the latest
// message exchanged and the number of unread messages from that partner.
const selectChats = `WITH exchanged AS (
		SELECT CASE WHEN m.sender_id = $1 THEN m.receiver_id ELSE m.sender_id END AS partner_id,
			m.message_id, m.content, m.created_at
		FROM messages m
		WHERE m.sender_id = $1 OR m.receiver_id = $1
	), latest AS (
		SELECT DISTINCT ON (partner_id) partner_id, content, created_at
		FROM exchanged
		ORDER BY partner_id, created_at DESC, message_id DESC
	)
	SELECT l.partner_id, u.name, u.avatar_url, l.content, l.created_at,
		(SELECT COUNT(*) FROM messages um
			WHERE um.sender_id = l.partner_id AND um.receiver_id = $1 AND um.is_read = FALSE) AS unread_count
	FROM latest l
	JOIN users u ON u.user_id = l.partner_id
	ORDER BY l.created_at DESC;`

// likeEscaper escapes LIKE wildcards in user input.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// ── users ───────────────────────────────────────────────────────────────────

func buildCreateUserQuery(user models.User) (string, []any, error) {
	return psql.
		Insert("users").
		Columns("name", "email", "password_hash", "phone", "university_id", "verification_token").
		Values(user.Name, user.Email, user.PasswordHash, user.Phone, user.UniversityID, user.VerificationToken).
		Suffix("RETURNING user_id, created_at").
		ToSql()
}

func buildFindUserQuery(where sq.Eq) (string, []any, error) {
	return psql.
		Select(userColumns...).
		From("users").
		Where(where).
		Limit(1).
		ToSql()
}

func buildFindUniversityByDomainQuery(domain string) (string, []any, error) {
	return psql.
		Select("university_id", "name", "domain").
		From("universities").
		Where(sq.Eq{"domain": strings.ToLower(domain)}).
		ToSql()
}

func buildVerifyEmailQuery(token string) (string, []any, error) {
	return psql.
		Update("users").
		Set("verified", true).
		Set("verification_token", nil).
		Where(sq.Eq{"verification_token": token}).
		Suffix("RETURNING user_id").
		ToSql()
}

// ── sessions ────────────────────────────────────────────────────────────────

func buildCreateSessionQuery(session models.Session, tokenHash string) (string, []any, error) {
	return psql.
		Insert("user_sessions").
		Columns("user_id", "token_hash", "ip_address", "user_agent", "expires_at").
		Values(session.UserID, tokenHash, session.IPAddress, session.UserAgent, session.ExpiresAt).
		ToSql()
}

func buildFindSessionQuery(tokenHash string) (string, []any, error) {
	return psql.
		Select(sessionColumns...).
		From("user_sessions").
		Where(sq.Eq{"token_hash": tokenHash}).
		ToSql()
}

func buildDeleteSessionQuery(tokenHash string) (string, []any, error) {
	return psql.
		Delete("user_sessions").
		Where(sq.Eq{"token_hash": tokenHash}).
		ToSql()
}

func buildDeleteExpiredSessionsQuery(now time.Time) (string, []any, error) {
	return psql.
		Delete("user_sessions").
		Where(sq.LtOrEq{"expires_at": now}).
		ToSql()
}

// ── rides ───────────────────────────────────────────────────────────────────

func buildCreateRideQuery(ride models.Ride) (string, []any, error) {
	return psql.
		Insert("rides").
		Columns(
			"driver_id", "origin_lat", "origin_lng", "origin_text",
			"dest_lat", "dest_lng", "dest_text", "schedule_time",
			"days_bitmask", "seats_available", "description", "status",
		).
		Values(
			ride.DriverID, ride.OriginLat, ride.OriginLng, ride.OriginText,
			ride.DestLat, ride.DestLng, ride.DestText, ride.ScheduleTime,
			ride.DaysBitmask, ride.SeatsAvailable, ride.Description, string(ride.Status),
		).
		Suffix("RETURNING ride_id").
		ToSql()
}

func buildCountActiveRidesQuery(driverID int64) (string, []any, error) {
	return psql.
		Select("COUNT(*)").
		From("rides").
		Where(sq.Eq{"driver_id": driverID, "status": string(models.RideStatusActive)}).
		ToSql()
}

// rideListingSelect selects rides joined with their driver's public data and
// the accepted passengers count.
func rideListingSelect() sq.SelectBuilder {
	return psql.
		Select(rideColumns...).
		Columns("u.name", "u.avatar_url", "u.is_premium", acceptedPassengersColumn).
		From("rides r").
		Join("users u ON u.user_id = r.driver_id")
}

func buildSearchRidesQuery(search models.RideSearch, limit uint64) (string, []any, error) {
	query := rideListingSelect().
		Where(sq.Eq{"r.status": string(models.RideStatusActive)})

	if search.Origin != nil && *search.Origin != "" {
		query = query.Where(sq.ILike{"r.origin_text": containsPattern(*search.Origin)})
	}
	if search.Destination != nil && *search.Destination != "" {
		query = query.Where(sq.ILike{"r.dest_text": containsPattern(*search.Destination)})
	}
	if search.Time != nil && *search.Time != "" {
		query = query.Where(sq.GtOrEq{"r.schedule_time": *search.Time})
	}
	if search.Day != nil && *search.Day >= 0 && *search.Day <= 6 {
		query = query.Where(sq.Expr("(r.days_bitmask & ?) <> 0", 1<<*search.Day))
	}

	return query.
		OrderBy("r.created_at DESC", "r.ride_id DESC").
		Limit(limit).
		ToSql()
}

func buildFindRideByIDQuery(rideID int64) (string, []any, error) {
	return psql.
		Select(rideColumns...).
		Columns("u.name", "u.avatar_url", "u.instagram", "u.phone", "u.is_premium", acceptedPassengersColumn).
		From("rides r").
		Join("users u ON u.user_id = r.driver_id").
		Where(sq.Eq{"r.ride_id": rideID}).
		ToSql()
}

func buildListDriverRidesQuery(driverID int64) (string, []any, error) {
	return rideListingSelect().
		Where(sq.Eq{"r.driver_id": driverID}).
		OrderBy("r.created_at DESC", "r.ride_id DESC").
		ToSql()
}

func buildCreateJoinRequestQuery(passenger models.RidePassenger) (string, []any, error) {
	return psql.
		Insert("ride_passengers").
		Columns("ride_id", "user_id", "status").
		Values(passenger.RideID, passenger.UserID, string(passenger.Status)).
		Suffix("RETURNING request_id, created_at").
		ToSql()
}

func buildUpdateRideStatusQuery(rideID int64, status models.RideStatus) (string, []any, error) {
	return psql.
		Update("rides").
		Set("status", string(status)).
		Where(sq.Eq{"ride_id": rideID}).
		ToSql()
}

// ── messages ────────────────────────────────────────────────────────────────

func buildCreateMessageQuery(message models.Message) (string, []any, error) {
	return psql.
		Insert("messages").
		Columns("sender_id", "receiver_id", "ride_id", "content").
		Values(message.SenderID, message.ReceiverID, message.RideID, message.Content).
		Suffix("RETURNING message_id").
		ToSql()
}

func buildCountSentSinceQuery(senderID int64, since time.Time) (string, []any, error) {
	return psql.
		Select("COUNT(*)").
		From("messages").
		Where(sq.Eq{"sender_id": senderID}).
		Where(sq.GtOrEq{"created_at": since}).
		ToSql()
}

func buildConversationQuery(userID, otherID int64, limit uint64) (string, []any, error) {
	return psql.
		Select(
			"m.message_id", "m.sender_id", "m.receiver_id", "m.ride_id",
			"m.content", "m.is_read", "m.created_at", "u.name", "u.avatar_url",
		).
		From("messages m").
		Join("users u ON u.user_id = m.sender_id").
		Where(sq.Or{
			sq.And{sq.Eq{"m.sender_id": userID}, sq.Eq{"m.receiver_id": otherID}},
			sq.And{sq.Eq{"m.sender_id": otherID}, sq.Eq{"m.receiver_id": userID}},
		}).
		OrderBy("m.created_at DESC", "m.message_id DESC").
		Limit(limit).
		ToSql()
}

func buildMarkReadQuery(receiverID, senderID int64) (string, []any, error) {
	return psql.
		Update("messages").
		Set("is_read", true).
		Where(sq.Eq{"receiver_id": receiverID, "sender_id": senderID, "is_read": false}).
		ToSql()
}
