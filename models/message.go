// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Message is a direct message between two users.
type Message struct {
	MessageID  int64     `json:"id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	RideID     *int64    `json:"ride_id"`
	Content    string    `json:"content"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Message model.
func (m Message) TableName() string {
	return "messages"
}

// ConversationMessage is a message enriched with its sender's display data.
type ConversationMessage struct {
	Message

	SenderName   string  `json:"sender_name"`
	SenderAvatar *string `json:"sender_avatar"`
}

// Chat is a conversation partner of a user.
type Chat struct {
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	AvatarURL   *string   `json:"avatar_url"`
	LastMessage string    `json:"last_message"`
	LastAt      time.Time `json:"last_message_at"`
	UnreadCount int       `json:"unread_count"`
}
