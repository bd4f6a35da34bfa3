// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/campus-ride/internal/logger"
	"github.com/MKhiriev/campus-ride/models"
	"github.com/jackc/pgerrcode"
)

// messageRepository is the PostgreSQL-backed implementation of
// [MessageRepository] over the "messages" table.
type messageRepository struct {
	*DB
	logger *logger.Logger
}

// NewMessageRepository constructs a [MessageRepository] backed by db.
func NewMessageRepository(db *DB, logger *logger.Logger) MessageRepository {
	logger.Debug().Msg("creating message repository")
	return &messageRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *messageRepository) CreateMessage(ctx context.Context, message models.Message) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateMessageQuery(message)
	if err != nil {
		log.Err(err).Str("func", "*messageRepository.CreateMessage").Msg("failed to build query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var messageID int64
	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&messageID); err != nil {
		log.Err(err).
			Str("func", "*messageRepository.CreateMessage").
			Int64("sender_id", message.SenderID).
			Int64("receiver_id", message.ReceiverID).
			Msg("error creating message")

		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return 0, ErrReferencedRowMissing
		}
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return messageID, nil
}

func (r *messageRepository) CountSentSince(ctx context.Context, senderID int64, since time.Time) (int, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountSentSinceQuery(senderID, since)
	if err != nil {
		log.Err(err).Str("func", "*messageRepository.CountSentSince").Msg("failed to build query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", "*messageRepository.CountSentSince").Int64("sender_id", senderID).Msg("error counting messages")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

func (r *messageRepository) Conversation(ctx context.Context, userID, otherID int64, limit uint64) ([]models.ConversationMessage, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildConversationQuery(userID, otherID, limit)
	if err != nil {
		log.Err(err).Str("func", "*messageRepository.Conversation").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*messageRepository.Conversation").
			Int64("user_id", userID).
			Int64("other_user_id", otherID).
			Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	messages := make([]models.ConversationMessage, 0)
	for rows.Next() {
		var m models.ConversationMessage
		err = rows.Scan(
			&m.MessageID, &m.SenderID, &m.ReceiverID, &m.RideID,
			&m.Content, &m.IsRead, &m.CreatedAt, &m.SenderName, &m.SenderAvatar,
		)
		if err != nil {
			log.Err(err).Str("func", "*messageRepository.Conversation").Msg("failed to scan message row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		messages = append(messages, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return messages, nil
}

func (r *messageRepository) Chats(ctx context.Context, userID int64) ([]models.Chat, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, selectChats, userID)
	if err != nil {
		log.Err(err).Str("func", "*messageRepository.Chats").Int64("user_id", userID).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	chats := make([]models.Chat, 0)
	for rows.Next() {
		var c models.Chat
		if err = rows.Scan(&c.UserID, &c.Name, &c.AvatarURL, &c.LastMessage, &c.LastAt, &c.UnreadCount); err != nil {
			log.Err(err).Str("func", "*messageRepository.Chats").Msg("failed to scan chat row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		chats = append(chats, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return chats, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, receiverID, senderID int64) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildMarkReadQuery(receiverID, senderID)
	if err != nil {
		log.Err(err).Str("func", "*messageRepository.MarkRead").Msg("failed to build query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.execContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*messageRepository.MarkRead").Msg("error marking messages read")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, _ := result.RowsAffected()
	return affected, nil
}
