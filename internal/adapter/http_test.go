// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/campus-ride/internal/config"
	handlerhttp "github.com/MKhiriev/campus-ride/internal/handler/http"
	"github.com/MKhiriev/campus-ride/internal/logger"
	"github.com/MKhiriev/campus-ride/internal/mock"
	"github.com/MKhiriev/campus-ride/internal/service"
	"github.com/MKhiriev/campus-ride/internal/store"
	"github.com/MKhiriev/campus-ride/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func newTestClient(t *testing.T, serverURL string) *httpAPIClient {
	t.Helper()

	c, err := NewHTTPAPIClient(serverURL, time.Second, logger.Nop())
	require.NoError(t, err)
	return c.(*httpAPIClient)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "localhost:8080", want: "http://localhost:8080"},
		{raw: " https://rides.example.com/ ", want: "https://rides.example.com"},
		{raw: "", wantErr: true},
		{raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── Error mapping ────────────────────────────────────────────────────────────

func TestAPIError_FromEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"validation failed","errors":{"origin_text":"origin is required"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).CreateRide(context.Background(), models.NewRideRequest{})

	require.ErrorIs(t, err, ErrBadRequest)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "validation failed", apiErr.Message)
	assert.Equal(t, map[string]string{"origin_text": "origin is required"}, apiErr.Fields)
}

func TestAPIError_PlainBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Chats(context.Background())

	require.ErrorIs(t, err, ErrServer)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestAPIError_Is(t *testing.T) {
	tests := []struct {
		status int
		target error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusTooManyRequests, ErrTooManyRequests},
		{http.StatusServiceUnavailable, ErrServer},
	}

	for _, tt := range tests {
		err := &APIError{StatusCode: tt.status}
		assert.ErrorIs(t, err, tt.target, tt.status)
		assert.NotErrorIs(t, err, ErrBadRequest, tt.status)
	}
}

// ── Against the real API ─────────────────────────────────────────────────────

type apiStores struct {
	users    *mock.MockUserRepository
	sessions *mock.MockSessionStore
	rides    *mock.MockRideRepository
	messages *mock.MockMessageRepository
}

func newAPIServer(t *testing.T) (*httptest.Server, apiStores) {
	t.Helper()

	ctrl := gomock.NewController(t)
	s := apiStores{
		users:    mock.NewMockUserRepository(ctrl),
		sessions: mock.NewMockSessionStore(ctrl),
		rides:    mock.NewMockRideRepository(ctrl),
		messages: mock.NewMockMessageRepository(ctrl),
	}

	cfg := *config.Defaults()
	cfg.App.TokenSignKey = "adapter-test-key"
	cfg.App.BcryptCost = bcrypt.MinCost

	services := service.NewServices(&store.Storages{
		UserRepository:    s.users,
		SessionStore:      s.sessions,
		RideRepository:    s.rides,
		MessageRepository: s.messages,
	}, cfg, models.NewAppBuildInfo("2.1.0", "2026-04-01", "f00d"), logger.Nop())

	srv := httptest.NewServer(handlerhttp.NewHandler(services, nil, cfg, logger.Nop()).Init())
	t.Cleanup(srv.Close)
	return srv, s
}

func TestClient_LoginThenProtectedCalls(t *testing.T) {
	srv, s := newAPIServer(t)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	var session models.Session
	s.users.EXPECT().FindUserByEmail(gomock.Any(), "ana@uni.edu").
		Return(models.User{UserID: 7, Name: "Ana", Email: "ana@uni.edu", PasswordHash: string(hash), Verified: true}, nil)
	s.sessions.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, sess models.Session) error {
		session = sess
		return nil
	})
	s.sessions.EXPECT().Find(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, token string) (models.Session, error) {
		if token != session.Token {
			return models.Session{}, store.ErrSessionNotFound
		}
		return session, nil
	}).AnyTimes()

	client := newTestClient(t, srv.URL)

	res, err := client.Login(ctx, models.LoginRequest{Email: "ana@uni.edu", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.User.UserID)
	assert.Equal(t, res.Token, client.Token())

	s.users.EXPECT().FindUserByID(gomock.Any(), int64(7)).Return(models.User{UserID: 7, Name: "Ana"}, nil)
	me, err := client.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", me.Name)

	s.rides.EXPECT().CountActiveRides(gomock.Any(), int64(7)).Return(0, nil)
	s.rides.EXPECT().CreateRide(gomock.Any(), gomock.Any()).Return(int64(31), nil)
	rideID, err := client.CreateRide(ctx, models.NewRideRequest{OriginText: "Campus", DestText: "Centro", ScheduleTime: "07:45"})
	require.NoError(t, err)
	assert.Equal(t, int64(31), rideID)

	s.rides.EXPECT().FindRideByID(gomock.Any(), int64(31)).Return(models.RideDetails{Ride: models.Ride{RideID: 31, DriverID: 7}}, nil)
	s.rides.EXPECT().UpdateRideStatus(gomock.Any(), int64(31), models.RideStatusCancelled).Return(nil)
	require.NoError(t, client.UpdateRideStatus(ctx, 31, models.RideStatusCancelled))

	s.messages.EXPECT().CountSentSince(gomock.Any(), int64(7), gomock.Any()).Return(0, nil)
	s.messages.EXPECT().CreateMessage(gomock.Any(), gomock.Any()).Return(int64(5), nil)
	messageID, err := client.SendMessage(ctx, models.NewMessageRequest{ReceiverID: 8, Content: "hola"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), messageID)

	s.sessions.EXPECT().Delete(gomock.Any(), session.Token).DoAndReturn(func(context.Context, string) error {
		session = models.Session{}
		return nil
	})
	require.NoError(t, client.Logout(ctx))
	assert.Empty(t, client.Token())

	_, err = client.MyRides(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_PublicCalls(t *testing.T) {
	srv, s := newAPIServer(t)
	ctx := context.Background()
	client := newTestClient(t, srv.URL)

	s.users.EXPECT().FindUniversityByDomain(gomock.Any(), "uni.edu").Return(models.University{UniversityID: 1}, nil)
	s.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{UserID: 12}, nil)
	userID, err := client.Register(ctx, models.RegisterRequest{Name: "Luis", Email: "luis@uni.edu", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, int64(12), userID)

	s.users.EXPECT().VerifyEmail(gomock.Any(), "tok").Return(int64(12), nil)
	userID, err = client.VerifyEmail(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, int64(12), userID)

	origin, day := "Campus", 2
	s.rides.EXPECT().SearchRides(gomock.Any(), models.RideSearch{Origin: &origin, Day: &day}, gomock.Any()).
		Return([]models.RideListing{{Ride: models.Ride{RideID: 3}, DriverName: "Ana"}}, nil)
	rides, err := client.SearchRides(ctx, models.RideSearch{Origin: &origin, Day: &day})
	require.NoError(t, err)
	require.Len(t, rides, 1)
	assert.Equal(t, "Ana", rides[0].DriverName)

	s.rides.EXPECT().FindRideByID(gomock.Any(), int64(99)).Return(models.RideDetails{}, store.ErrRideNotFound)
	_, err = client.GetRide(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	info, err := client.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.BuildInfoResponse{Version: "2.1.0", Date: "2026-04-01", Commit: "f00d"}, info)
}
