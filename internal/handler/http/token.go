// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/campus-ride/internal/utils"
)

const authCookieName = "auth_token"

// extractToken returns the token of r: the auth_token cookie first, then an
// "Authorization: Bearer" header. Returns "" when neither is present.
func extractToken(r *http.Request) string {
	if c, err := r.Cookie(authCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	token, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
	if err != nil {
		return ""
	}
	return token
}

// authCookie carries token for lifetime. It is HttpOnly, SameSite=Lax and
// Secure unless the server runs with insecure cookies.
func (h *Handler) authCookie(token string, lifetime time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(lifetime.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// clearedAuthCookie makes the browser drop the auth cookie.
func (h *Handler) clearedAuthCookie() *http.Cookie {
	return &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
