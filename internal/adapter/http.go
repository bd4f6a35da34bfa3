// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/campus-ride/internal/logger"
	"github.com/MKhiriev/campus-ride/internal/utils"
	"github.com/MKhiriev/campus-ride/models"
	"github.com/go-resty/resty/v2"
)

type httpAPIClient struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// successEnvelope mirrors the body of every successful API response.
type successEnvelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// NewHTTPAPIClient returns an [APIClient] for the server at baseURL. A
// missing scheme defaults to http.
func NewHTTPAPIClient(baseURL string, timeout time.Duration, logger *logger.Logger) (APIClient, error) {
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}

	client := utils.NewHTTPClient(timeout)
	client.SetBaseURL(normalized)

	return &httpAPIClient{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errEmptyBaseURL
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpAPIClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpAPIClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpAPIClient) Register(ctx context.Context, req models.RegisterRequest) (int64, error) {
	res, err := call[models.UserIDResponse](h.request(ctx).SetBody(req), resty.MethodPost, "/api/auth/register")
	if err != nil {
		return 0, fmt.Errorf("register: %w", err)
	}
	return res.UserID, nil
}

func (h *httpAPIClient) VerifyEmail(ctx context.Context, token string) (int64, error) {
	res, err := call[models.UserIDResponse](h.request(ctx), resty.MethodGet, "/api/auth/verify/"+url.PathEscape(token))
	if err != nil {
		return 0, fmt.Errorf("verify email: %w", err)
	}
	return res.UserID, nil
}

// Login stores the token of the response body. The auth cookie set by the
// server carries the same token and is not needed.
func (h *httpAPIClient) Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error) {
	res, err := call[models.LoginResult](h.request(ctx).SetBody(req), resty.MethodPost, "/api/auth/login")
	if err != nil {
		return models.LoginResult{}, fmt.Errorf("login: %w", err)
	}

	h.SetToken(res.Token)
	h.logger.Debug().Int64("user_id", res.User.UserID).Msg("logged in")
	return res, nil
}

func (h *httpAPIClient) Logout(ctx context.Context) error {
	if _, err := call[json.RawMessage](h.request(ctx), resty.MethodPost, "/api/auth/logout"); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	h.SetToken("")
	return nil
}

func (h *httpAPIClient) Me(ctx context.Context) (models.User, error) {
	user, err := call[models.User](h.request(ctx), resty.MethodGet, "/api/auth/me")
	if err != nil {
		return models.User{}, fmt.Errorf("me: %w", err)
	}
	return user, nil
}

func (h *httpAPIClient) SearchRides(ctx context.Context, search models.RideSearch) ([]models.RideListing, error) {
	req := h.request(ctx)
	if search.Origin != nil {
		req.SetQueryParam("origin", *search.Origin)
	}
	if search.Destination != nil {
		req.SetQueryParam("destination", *search.Destination)
	}
	if search.Time != nil {
		req.SetQueryParam("time", *search.Time)
	}
	if search.Day != nil {
		req.SetQueryParam("day", strconv.Itoa(*search.Day))
	}

	rides, err := call[[]models.RideListing](req, resty.MethodGet, "/api/rides/search")
	if err != nil {
		return nil, fmt.Errorf("search rides: %w", err)
	}
	return rides, nil
}

func (h *httpAPIClient) GetRide(ctx context.Context, rideID int64) (models.RideDetails, error) {
	ride, err := call[models.RideDetails](h.request(ctx), resty.MethodGet, ridePath(rideID, ""))
	if err != nil {
		return models.RideDetails{}, fmt.Errorf("get ride %d: %w", rideID, err)
	}
	return ride, nil
}

func (h *httpAPIClient) MyRides(ctx context.Context) ([]models.RideListing, error) {
	rides, err := call[[]models.RideListing](h.request(ctx), resty.MethodGet, "/api/rides/my-rides")
	if err != nil {
		return nil, fmt.Errorf("my rides: %w", err)
	}
	return rides, nil
}

func (h *httpAPIClient) CreateRide(ctx context.Context, req models.NewRideRequest) (int64, error) {
	res, err := call[models.RideIDResponse](h.request(ctx).SetBody(req), resty.MethodPost, "/api/rides")
	if err != nil {
		return 0, fmt.Errorf("create ride: %w", err)
	}
	return res.RideID, nil
}

func (h *httpAPIClient) JoinRide(ctx context.Context, rideID int64) (models.JoinResponse, error) {
	res, err := call[models.JoinResponse](h.request(ctx), resty.MethodPost, ridePath(rideID, "/join"))
	if err != nil {
		return models.JoinResponse{}, fmt.Errorf("join ride %d: %w", rideID, err)
	}
	return res, nil
}

func (h *httpAPIClient) UpdateRideStatus(ctx context.Context, rideID int64, status models.RideStatus) error {
	body := models.RideStatusRequest{Status: status}
	if _, err := call[json.RawMessage](h.request(ctx).SetBody(body), resty.MethodPut, ridePath(rideID, "/status")); err != nil {
		return fmt.Errorf("update ride %d status: %w", rideID, err)
	}
	return nil
}

func (h *httpAPIClient) SendMessage(ctx context.Context, req models.NewMessageRequest) (int64, error) {
	res, err := call[models.MessageIDResponse](h.request(ctx).SetBody(req), resty.MethodPost, "/api/messages")
	if err != nil {
		return 0, fmt.Errorf("send message: %w", err)
	}
	return res.MessageID, nil
}

func (h *httpAPIClient) Chats(ctx context.Context) ([]models.Chat, error) {
	chats, err := call[[]models.Chat](h.request(ctx), resty.MethodGet, "/api/messages/chats")
	if err != nil {
		return nil, fmt.Errorf("chats: %w", err)
	}
	return chats, nil
}

func (h *httpAPIClient) Conversation(ctx context.Context, otherUserID int64) ([]models.ConversationMessage, error) {
	path := "/api/messages/conversation/" + strconv.FormatInt(otherUserID, 10)

	messages, err := call[[]models.ConversationMessage](h.request(ctx), resty.MethodGet, path)
	if err != nil {
		return nil, fmt.Errorf("conversation with %d: %w", otherUserID, err)
	}
	return messages, nil
}

// Version reads /version, which is served outside the envelope.
func (h *httpAPIClient) Version(ctx context.Context) (models.BuildInfoResponse, error) {
	var info models.BuildInfoResponse

	resp, err := h.request(ctx).SetResult(&info).Get("/version")
	if err != nil {
		return models.BuildInfoResponse{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.BuildInfoResponse{}, err
	}
	return info, nil
}

// request starts a request carrying the stored token, if any.
func (h *httpAPIClient) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// call executes req and unwraps the data of the success envelope.
func call[T any](req *resty.Request, method, path string) (T, error) {
	var (
		env  successEnvelope[T]
		zero T
	)

	resp, err := req.SetResult(&env).Execute(method, path)
	if err != nil {
		return zero, fmt.Errorf("%s %s request: %w", method, path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return zero, err
	}
	return env.Data, nil
}

func ridePath(rideID int64, suffix string) string {
	return "/api/rides/" + strconv.FormatInt(rideID, 10) + suffix
}
