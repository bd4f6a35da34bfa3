// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/campus-ride/internal/apperr"
	"github.com/MKhiriev/campus-ride/internal/logger"
	"github.com/MKhiriev/campus-ride/internal/mock"
	"github.com/MKhiriev/campus-ride/internal/store"
	"github.com/MKhiriev/campus-ride/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestMessageSvc(t *testing.T, ctrl *gomock.Controller) (*messageService, *mock.MockMessageRepository) {
	t.Helper()

	messages := mock.NewMockMessageRepository(ctrl)
	svc := NewMessageService(messages, testAppConfig(), logger.Nop()).(*messageService)
	// 23:30 at UTC-3 is already the next UTC day.
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 23, 30, 0, 0, time.FixedZone("CLT", -3*60*60))
	}
	return svc, messages
}

func TestMessageService_Send(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, messages := newTestMessageSvc(t, ctrl)
	rideID := int64(4)
	dayStart := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	gomock.InOrder(
		messages.EXPECT().CountSentSince(gomock.Any(), int64(1), dayStart).Return(2, nil),
		messages.EXPECT().CreateMessage(gomock.Any(), models.Message{SenderID: 1, ReceiverID: 2, RideID: &rideID, Content: "hola"}).Return(int64(90), nil),
	)

	id, err := svc.Send(context.Background(), 1, models.NewMessageRequest{ReceiverID: 2, Content: " hola ", RideID: &rideID})
	require.NoError(t, err)
	assert.Equal(t, int64(90), id)
}

func TestMessageService_Send_DailyCap(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, messages := newTestMessageSvc(t, ctrl)

	messages.EXPECT().CountSentSince(gomock.Any(), int64(1), gomock.Any()).Return(3, nil)

	_, err := svc.Send(context.Background(), 1, models.NewMessageRequest{ReceiverID: 2, Content: "hola"})
	assert.ErrorIs(t, err, ErrDailyMessagesLimit)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestMessageService_Send_UnknownReceiver(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, messages := newTestMessageSvc(t, ctrl)

	messages.EXPECT().CountSentSince(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)
	messages.EXPECT().CreateMessage(gomock.Any(), gomock.Any()).Return(int64(0), store.ErrReferencedRowMissing)

	_, err := svc.Send(context.Background(), 1, models.NewMessageRequest{ReceiverID: 404, Content: "hola"})
	assert.ErrorIs(t, err, ErrReceiverNotFound)
}

func TestMessageValidationService_Send(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner, _ := newTestMessageSvc(t, ctrl)
	svc := NewMessageValidationService().Wrap(inner)

	_, err := svc.Send(context.Background(), 1, models.NewMessageRequest{})
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "receiver_id")
	assert.Contains(t, appErr.Fields, "content")

	_, err = svc.Send(context.Background(), 1, models.NewMessageRequest{ReceiverID: 1, Content: "me"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestMessageService_Chats(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, messages := newTestMessageSvc(t, ctrl)

	messages.EXPECT().Chats(gomock.Any(), int64(1)).Return([]models.Chat{{UserID: 2, UnreadCount: 1}}, nil)

	chats, err := svc.Chats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []models.Chat{{UserID: 2, UnreadCount: 1}}, chats)
}

func TestMessageService_ConversationMarksRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, messages := newTestMessageSvc(t, ctrl)
	want := []models.ConversationMessage{{Message: models.Message{MessageID: 2}}, {Message: models.Message{MessageID: 1}}}

	gomock.InOrder(
		messages.EXPECT().Conversation(gomock.Any(), int64(1), int64(2), uint64(conversationLimit)).Return(want, nil),
		messages.EXPECT().MarkRead(gomock.Any(), int64(1), int64(2)).Return(int64(1), nil),
	)

	got, err := svc.Conversation(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMessageService_ConversationMarkReadFailureIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, messages := newTestMessageSvc(t, ctrl)

	messages.EXPECT().Conversation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]models.ConversationMessage{}, nil)
	messages.EXPECT().MarkRead(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("deadlock"))

	got, err := svc.Conversation(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMessageService_ConversationLoadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, messages := newTestMessageSvc(t, ctrl)

	messages.EXPECT().Conversation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("deadlock"))

	_, err := svc.Conversation(context.Background(), 1, 2)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}
