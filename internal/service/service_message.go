// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MKhiriev/campus-ride/internal/config"
	"github.com/MKhiriev/campus-ride/internal/logger"
	"github.com/MKhiriev/campus-ride/internal/store"
	"github.com/MKhiriev/campus-ride/models"
)

// conversationLimit is the number of most recent messages returned for a
// conversation.
const conversationLimit = 50

type messageService struct {
	messageRepository store.MessageRepository

	// maxPerDay caps the messages a user may send per UTC day; zero disables
	// the cap.
	maxPerDay int

	now    func() time.Time
	logger *logger.Logger
}

func NewMessageService(messageRepository store.MessageRepository, cfg config.App, logger *logger.Logger) MessageService {
	return &messageService{
		messageRepository: messageRepository,
		maxPerDay:         cfg.MaxMessagesPerDay,
		now:               time.Now,
		logger:            logger,
	}
}

// Send stores a message from senderID unless the sender already reached the
// daily cap.
func (m *messageService) Send(ctx context.Context, senderID int64, req models.NewMessageRequest) (int64, error) {
	log := logger.FromContext(ctx)

	now := m.now().UTC()
	if m.maxPerDay > 0 {
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

		sent, err := m.messageRepository.CountSentSince(ctx, senderID, dayStart)
		if err != nil {
			log.Err(err).Str("func", "*messageService.Send").Msg("counting sent messages failed")
			return 0, internal(err)
		}
		if sent >= m.maxPerDay {
			return 0, ErrDailyMessagesLimit
		}
	}

	messageID, err := m.messageRepository.CreateMessage(ctx, models.Message{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		RideID:     req.RideID,
		Content:    strings.TrimSpace(req.Content),
	})
	if err != nil {
		if errors.Is(err, store.ErrReferencedRowMissing) {
			return 0, ErrReceiverNotFound
		}
		log.Err(err).Str("func", "*messageService.Send").Msg("message creation failed")
		return 0, internal(err)
	}

	return messageID, nil
}

func (m *messageService) Chats(ctx context.Context, userID int64) ([]models.Chat, error) {
	chats, err := m.messageRepository.Chats(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*messageService.Chats").Msg("listing chats failed")
		return nil, internal(err)
	}
	return chats, nil
}

// Conversation returns the latest messages exchanged by userID and otherID,
// newest first, and then marks the messages of otherID as read. A failure to
// mark them is logged only.
func (m *messageService) Conversation(ctx context.Context, userID, otherID int64) ([]models.ConversationMessage, error) {
	log := logger.FromContext(ctx)

	messages, err := m.messageRepository.Conversation(ctx, userID, otherID, conversationLimit)
	if err != nil {
		log.Err(err).Str("func", "*messageService.Conversation").Msg("loading conversation failed")
		return nil, internal(err)
	}

	marked, err := m.messageRepository.MarkRead(ctx, userID, otherID)
	if err != nil {
		log.Err(err).Str("func", "*messageService.Conversation").Msg("marking messages as read failed")
		return messages, nil
	}
	log.Debug().Str("func", "*messageService.Conversation").Int64("marked", marked).Msg("messages marked as read")

	return messages, nil
}
