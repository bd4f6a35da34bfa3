// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/campus-ride/internal/router"
	"github.com/MKhiriev/campus-ride/internal/service"
	"github.com/MKhiriev/campus-ride/models"
)

func (h *Handler) searchRides(ctx context.Context, call *router.Call) (router.Result, error) {
	search, err := parseRideSearch(call.Request.URL.Query())
	if err != nil {
		return router.Result{}, err
	}

	rides, err := h.services.RideService.Search(ctx, search)
	if err != nil {
		return router.Result{}, err
	}

	return router.OK(rides, ""), nil
}

func (h *Handler) getRide(ctx context.Context, call *router.Call) (router.Result, error) {
	rideID, err := pathID(call, 0, service.ErrRideNotFound)
	if err != nil {
		return router.Result{}, err
	}

	ride, err := h.services.RideService.Get(ctx, rideID)
	if err != nil {
		return router.Result{}, err
	}

	return router.OK(ride, ""), nil
}

func (h *Handler) myRides(ctx context.Context, call *router.Call) (router.Result, error) {
	rides, err := h.services.RideService.MyRides(ctx, call.UserID)
	if err != nil {
		return router.Result{}, err
	}

	return router.OK(rides, ""), nil
}

func (h *Handler) createRide(ctx context.Context, call *router.Call) (router.Result, error) {
	var req models.NewRideRequest
	if err := call.Decode(&req); err != nil {
		return router.Result{}, err
	}

	rideID, err := h.services.RideService.Create(ctx, call.UserID, req)
	if err != nil {
		return router.Result{}, err
	}

	return router.Created(models.RideIDResponse{RideID: rideID}, "ride created"), nil
}

func (h *Handler) joinRide(ctx context.Context, call *router.Call) (router.Result, error) {
	rideID, err := pathID(call, 0, service.ErrRideNotFound)
	if err != nil {
		return router.Result{}, err
	}

	request, err := h.services.RideService.Join(ctx, call.UserID, rideID)
	if err != nil {
		return router.Result{}, err
	}

	return router.Created(models.JoinResponse{RequestID: request.RequestID, Status: request.Status}, "join request sent"), nil
}

func (h *Handler) updateRideStatus(ctx context.Context, call *router.Call) (router.Result, error) {
	rideID, err := pathID(call, 0, service.ErrRideNotFound)
	if err != nil {
		return router.Result{}, err
	}

	var req models.RideStatusRequest
	if err = call.Decode(&req); err != nil {
		return router.Result{}, err
	}

	if err = h.services.RideService.UpdateStatus(ctx, call.UserID, rideID, req); err != nil {
		return router.Result{}, err
	}

	return router.OK(nil, "ride status updated"), nil
}

// pathID parses the i-th path parameter as a positive id. Anything else
// cannot name an existing resource and yields notFound.
func pathID(call *router.Call, i int, notFound error) (int64, error) {
	id, err := strconv.ParseInt(call.Param(i), 10, 64)
	if err != nil || id <= 0 {
		return 0, notFound
	}
	return id, nil
}

// parseRideSearch reads the origin, destination, time and day filters.
// Empty parameters are not applied.
func parseRideSearch(query url.Values) (models.RideSearch, error) {
	var search models.RideSearch

	if v := strings.TrimSpace(query.Get("origin")); v != "" {
		search.Origin = &v
	}
	if v := strings.TrimSpace(query.Get("destination")); v != "" {
		search.Destination = &v
	}
	if v := strings.TrimSpace(query.Get("time")); v != "" {
		search.Time = &v
	}
	if v := strings.TrimSpace(query.Get("day")); v != "" {
		day, err := strconv.Atoi(v)
		if err != nil {
			return models.RideSearch{}, ErrInvalidQuery.WithFields(map[string]string{"day": "day must be a number"})
		}
		search.Day = &day
	}

	return search, nil
}
