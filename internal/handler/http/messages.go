// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"

	"github.com/MKhiriev/campus-ride/internal/router"
	"github.com/MKhiriev/campus-ride/internal/service"
	"github.com/MKhiriev/campus-ride/models"
)

func (h *Handler) sendMessage(ctx context.Context, call *router.Call) (router.Result, error) {
	var req models.NewMessageRequest
	if err := call.Decode(&req); err != nil {
		return router.Result{}, err
	}

	messageID, err := h.services.MessageService.Send(ctx, call.UserID, req)
	if err != nil {
		return router.Result{}, err
	}

	return router.Created(models.MessageIDResponse{MessageID: messageID}, "message sent"), nil
}

func (h *Handler) chats(ctx context.Context, call *router.Call) (router.Result, error) {
	chats, err := h.services.MessageService.Chats(ctx, call.UserID)
	if err != nil {
		return router.Result{}, err
	}

	return router.OK(chats, ""), nil
}

func (h *Handler) conversation(ctx context.Context, call *router.Call) (router.Result, error) {
	otherID, err := pathID(call, 0, service.ErrUserNotFound)
	if err != nil {
		return router.Result{}, err
	}

	messages, err := h.services.MessageService.Conversation(ctx, call.UserID, otherID)
	if err != nil {
		return router.Result{}, err
	}

	return router.OK(messages, ""), nil
}
