// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/campus-ride/internal/router"
	"github.com/MKhiriev/campus-ride/internal/utils"
	"github.com/MKhiriev/campus-ride/models"
)

func (h *Handler) register(ctx context.Context, call *router.Call) (router.Result, error) {
	var req models.RegisterRequest
	if err := call.Decode(&req); err != nil {
		return router.Result{}, err
	}

	userID, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		return router.Result{}, err
	}

	return router.Created(models.UserIDResponse{UserID: userID}, "registered, check your email to verify the account"), nil
}

func (h *Handler) login(ctx context.Context, call *router.Call) (router.Result, error) {
	var req models.LoginRequest
	if err := call.Decode(&req); err != nil {
		return router.Result{}, err
	}

	result, err := h.services.AuthService.Login(ctx, req, clientInfo(call.Request))
	if err != nil {
		return router.Result{}, err
	}

	res := router.OK(result, "logged in")
	res.Cookies = []*http.Cookie{h.authCookie(result.Token, h.tokenLifetime)}
	return res, nil
}

func (h *Handler) verifyEmail(ctx context.Context, call *router.Call) (router.Result, error) {
	userID, err := h.services.AuthService.VerifyEmail(ctx, call.Param(0))
	if err != nil {
		return router.Result{}, err
	}

	return router.OK(models.UserIDResponse{UserID: userID}, "email verified"), nil
}

func (h *Handler) logout(ctx context.Context, call *router.Call) (router.Result, error) {
	_ = h.services.AuthService.Logout(ctx, extractToken(call.Request))

	res := router.OK(nil, "logged out")
	res.Cookies = []*http.Cookie{h.clearedAuthCookie()}
	return res, nil
}

func (h *Handler) me(ctx context.Context, call *router.Call) (router.Result, error) {
	user, err := h.services.AuthService.Me(ctx, call.UserID)
	if err != nil {
		return router.Result{}, err
	}

	return router.OK(user, ""), nil
}

func clientInfo(r *http.Request) models.ClientInfo {
	if r == nil {
		return models.ClientInfo{}
	}
	return models.ClientInfo{IPAddress: utils.ClientIP(r), UserAgent: r.UserAgent()}
}
