// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/campus-ride/internal/router"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the chi mux serving the whole API.
func (h *Handler) Init() *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(middleware.Recoverer)
	mux.Use(h.withTraceID)
	mux.Use(withLogging)
	mux.Use(middleware.Compress(5, "application/json"))
	mux.Use(h.withCORS)

	mux.Get("/healthz", h.healthz)
	mux.Get("/version", h.getServerVersion)

	dispatcher := router.NewDispatcher(h.Routes(), h.services.AuthService, extractToken, h.logger)
	mux.With(h.withRateLimit).Handle("/*", dispatcher)

	mux.MethodNotAllowed(routeNotFound)
	mux.NotFound(routeNotFound)

	return mux
}

// Routes registers every API endpoint on a fresh route table.
func (h *Handler) Routes() *router.Table {
	t := router.NewTable()

	t.Post("/api/auth/register", h.register)
	t.Post("/api/auth/login", h.login)
	t.Get("/api/auth/verify/{token}", h.verifyEmail)
	t.Post("/api/auth/logout", h.logout)
	t.Get("/api/auth/me", h.me, router.Protected())

	t.Get("/api/rides/search", h.searchRides)
	t.Get("/api/rides/my-rides", h.myRides, router.Protected())
	t.Get("/api/rides/{id}", h.getRide)
	t.Post("/api/rides", h.createRide, router.Protected())
	t.Post("/api/rides/{id}/join", h.joinRide, router.Protected())
	t.Put("/api/rides/{id}/status", h.updateRideStatus, router.Protected())

	t.Post("/api/messages", h.sendMessage, router.Protected())
	t.Get("/api/messages/chats", h.chats, router.Protected())
	t.Get("/api/messages/conversation/{otherUserId}", h.conversation, router.Protected())

	return t
}
