// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/campus-ride/internal/config"
	"github.com/MKhiriev/campus-ride/internal/logger"
	"github.com/MKhiriev/campus-ride/internal/mock"
	"github.com/MKhiriev/campus-ride/internal/service"
	"github.com/MKhiriev/campus-ride/internal/store"
	"github.com/MKhiriev/campus-ride/internal/utils"
	"github.com/MKhiriev/campus-ride/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const testSignKey = "handler-test-key"

// testAPI is the full HTTP stack over gomock repositories.
type testAPI struct {
	mux      *chi.Mux
	users    *mock.MockUserRepository
	sessions *mock.MockSessionStore
	rides    *mock.MockRideRepository
	messages *mock.MockMessageRepository
}

func testConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App: config.App{
			TokenSignKey:      testSignKey,
			TokenDuration:     time.Hour,
			BcryptCost:        bcrypt.MinCost,
			MaxMessagesPerDay: 50,
			MaxActiveRides:    10,
		},
		Server: config.Server{CORSOrigin: "http://localhost:3000"},
	}
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	ctrl := gomock.NewController(t)
	api := &testAPI{
		users:    mock.NewMockUserRepository(ctrl),
		sessions: mock.NewMockSessionStore(ctrl),
		rides:    mock.NewMockRideRepository(ctrl),
		messages: mock.NewMockMessageRepository(ctrl),
	}

	storages := &store.Storages{
		UserRepository:    api.users,
		SessionStore:      api.sessions,
		RideRepository:    api.rides,
		MessageRepository: api.messages,
	}
	cfg := testConfig()
	services := service.NewServices(storages, cfg, models.NewAppBuildInfo("1.0.0", "2026-03-01", "abc"), logger.Nop())
	api.mux = NewHandler(services, nil, cfg, logger.Nop()).Init()

	return api
}

// signIn issues a token for userID and makes the session store accept it.
func (a *testAPI) signIn(t *testing.T, userID int64) string {
	t.Helper()

	token, err := utils.EncodeToken(models.Claims{UserID: userID, Email: "ana@uni.edu"}, testSignKey, time.Hour, time.Now())
	require.NoError(t, err)

	a.sessions.EXPECT().Find(gomock.Any(), token).
		Return(models.Session{UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}, nil).
		AnyTimes()
	return token
}

func (a *testAPI) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.mux.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

// ── Rides ────────────────────────────────────────────────────────────────────

func TestAPI_CreateRide_Unauthenticated(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/rides", `{"origin_text":"A","dest_text":"B","schedule_time":"08:00"}`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"invalid or expired token","errors":{}}`, rec.Body.String())
}

func TestAPI_CreateRide_MissingOriginWritesNoRow(t *testing.T) {
	api := newTestAPI(t)
	token := api.signIn(t, 1)

	rec := api.do(t, http.MethodPost, "/api/rides", `{"dest_text":"B","schedule_time":"08:00"}`, token)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Contains(t, env.Errors, "origin_text")
}

func TestAPI_CreateRide_Success(t *testing.T) {
	api := newTestAPI(t)
	token := api.signIn(t, 1)

	api.rides.EXPECT().CountActiveRides(gomock.Any(), int64(1)).Return(0, nil)
	api.rides.EXPECT().CreateRide(gomock.Any(), gomock.Any()).Return(int64(12), nil)

	rec := api.do(t, http.MethodPost, "/api/rides", `{"origin_text":"A","dest_text":"B","schedule_time":"08:00","seats_available":3}`, token)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"ride_id":12}`, string(decodeEnvelope(t, rec).Data))
}

func TestAPI_GetRide(t *testing.T) {
	api := newTestAPI(t)

	api.rides.EXPECT().FindRideByID(gomock.Any(), int64(5)).
		Return(models.RideDetails{Ride: models.Ride{RideID: 5, OriginText: "A"}, DriverName: "Luis"}, nil)
	api.rides.EXPECT().FindRideByID(gomock.Any(), int64(6)).Return(models.RideDetails{}, store.ErrRideNotFound)

	rec := api.do(t, http.MethodGet, "/api/rides/5", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decodeEnvelope(t, rec).Data), `"driver_name":"Luis"`)

	rec = api.do(t, http.MethodGet, "/api/rides/6", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/rides/abc", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_SearchRides(t *testing.T) {
	api := newTestAPI(t)

	api.rides.EXPECT().SearchRides(gomock.Any(), gomock.Any(), uint64(50)).
		DoAndReturn(func(_ context.Context, s models.RideSearch, _ uint64) ([]models.RideListing, error) {
			require.NotNil(t, s.Origin)
			assert.Equal(t, "campus", *s.Origin)
			assert.Nil(t, s.Destination)
			require.NotNil(t, s.Day)
			assert.Equal(t, 1, *s.Day)
			return []models.RideListing{}, nil
		})

	rec := api.do(t, http.MethodGet, "/api/rides/search?origin=campus&day=1", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(decodeEnvelope(t, rec).Data))

	rec = api.do(t, http.MethodGet, "/api/rides/search?day=monday", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Errors, "day")

	rec = api.do(t, http.MethodGet, "/api/rides/search?day=7", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_MyRidesIsNotTreatedAsID(t *testing.T) {
	api := newTestAPI(t)
	token := api.signIn(t, 3)

	api.rides.EXPECT().ListDriverRides(gomock.Any(), int64(3)).Return([]models.RideListing{}, nil)

	rec := api.do(t, http.MethodGet, "/api/rides/my-rides", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPI_JoinRide(t *testing.T) {
	api := newTestAPI(t)
	token := api.signIn(t, 2)

	api.rides.EXPECT().FindRideByID(gomock.Any(), int64(5)).
		Return(models.RideDetails{Ride: models.Ride{RideID: 5, DriverID: 1, SeatsAvailable: 2, Status: models.RideStatusActive}}, nil)
	api.rides.EXPECT().CreateJoinRequest(gomock.Any(), gomock.Any()).
		Return(models.RidePassenger{RequestID: 44, Status: models.PassengerStatusPending}, nil)

	rec := api.do(t, http.MethodPost, "/api/rides/5/join", "", token)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"request_id":44,"status":"pending"}`, string(decodeEnvelope(t, rec).Data))
}

func TestAPI_UpdateRideStatus_OnlyDriver(t *testing.T) {
	api := newTestAPI(t)
	token := api.signIn(t, 2)

	api.rides.EXPECT().FindRideByID(gomock.Any(), int64(5)).
		Return(models.RideDetails{Ride: models.Ride{RideID: 5, DriverID: 1}}, nil)

	rec := api.do(t, http.MethodPut, "/api/rides/5/status", `{"status":"cancelled"}`, token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodPut, "/api/rides/5/status", `{}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Errors, "status")
}

// ── Auth ─────────────────────────────────────────────────────────────────────

func TestAPI_Register(t *testing.T) {
	api := newTestAPI(t)

	api.users.EXPECT().FindUniversityByDomain(gomock.Any(), "uni.edu").Return(models.University{UniversityID: 1}, nil)
	api.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{UserID: 8}, nil)

	rec := api.do(t, http.MethodPost, "/api/auth/register", `{"name":"Ana","email":"ana@uni.edu","password":"secret123"}`, "")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"user_id":8}`, string(decodeEnvelope(t, rec).Data))
}

func TestAPI_Register_ValidationFields(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/auth/register", `{"email":"nope","password":"short"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Contains(t, env.Errors, "name")
	assert.Contains(t, env.Errors, "email")
	assert.Contains(t, env.Errors, "password")
}

func TestAPI_Register_MalformedJSON(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/auth/register", `{"email":`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_Login_SetsCookie(t *testing.T) {
	api := newTestAPI(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	api.users.EXPECT().FindUserByEmail(gomock.Any(), "ana@uni.edu").
		Return(models.User{UserID: 7, Name: "Ana", Email: "ana@uni.edu", PasswordHash: string(hash), Verified: true}, nil)
	api.sessions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	rec := api.do(t, http.MethodPost, "/api/auth/login", `{"email":"ana@uni.edu","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Token string             `json:"token"`
		User  models.UserSummary `json:"user"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &data))
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, int64(7), data.User.UserID)
	assert.NotContains(t, rec.Body.String(), "password")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, authCookieName, c.Name)
	assert.Equal(t, data.Token, c.Value)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 3600, c.MaxAge)
}

func TestAPI_Login_Failures(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/auth/login", `{}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	api.users.EXPECT().FindUserByEmail(gomock.Any(), "who@uni.edu").Return(models.User{}, store.ErrUserNotFound)
	rec = api.do(t, http.MethodPost, "/api/auth/login", `{"email":"who@uni.edu","password":"x"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", decodeEnvelope(t, rec).Message)
}

func TestAPI_Logout_AlwaysSucceeds(t *testing.T) {
	api := newTestAPI(t)

	api.sessions.EXPECT().Delete(gomock.Any(), "cookie-token").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: authCookieName, Value: "cookie-token"})
	rec := httptest.NewRecorder()
	api.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, authCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)

	rec = api.do(t, http.MethodPost, "/api/auth/logout", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPI_VerifyEmail(t *testing.T) {
	api := newTestAPI(t)

	api.users.EXPECT().VerifyEmail(gomock.Any(), "abc").Return(int64(4), nil)
	api.users.EXPECT().VerifyEmail(gomock.Any(), "zzz").Return(int64(0), store.ErrVerificationTokenNotFound)

	rec := api.do(t, http.MethodGet, "/api/auth/verify/abc", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/auth/verify/zzz", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_Me_WithCookieAndWithoutPasswordHash(t *testing.T) {
	api := newTestAPI(t)
	token := api.signIn(t, 9)

	api.users.EXPECT().FindUserByID(gomock.Any(), int64(9)).
		Return(models.User{UserID: 9, Name: "Ana", PasswordHash: "$2a$secret-hash"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: authCookieName, Value: token})
	rec := httptest.NewRecorder()
	api.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret-hash")
	assert.Contains(t, rec.Body.String(), `"name":"Ana"`)
}

func TestAPI_RevokedSessionIsRejected(t *testing.T) {
	api := newTestAPI(t)

	token, err := utils.EncodeToken(models.Claims{UserID: 9}, testSignKey, time.Hour, time.Now())
	require.NoError(t, err)
	api.sessions.EXPECT().Find(gomock.Any(), token).Return(models.Session{}, store.ErrSessionNotFound)

	rec := api.do(t, http.MethodGet, "/api/auth/me", "", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ── Messages ─────────────────────────────────────────────────────────────────

func TestAPI_SendMessage(t *testing.T) {
	api := newTestAPI(t)
	token := api.signIn(t, 1)

	api.messages.EXPECT().CountSentSince(gomock.Any(), int64(1), gomock.Any()).Return(0, nil)
	api.messages.EXPECT().CreateMessage(gomock.Any(), gomock.Any()).Return(int64(77), nil)

	rec := api.do(t, http.MethodPost, "/api/messages", `{"receiver_id":2,"content":"hola"}`, token)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message_id":77}`, string(decodeEnvelope(t, rec).Data))

	rec = api.do(t, http.MethodPost, "/api/messages", `{"receiver_id":1,"content":"hola"}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_Conversation(t *testing.T) {
	api := newTestAPI(t)
	token := api.signIn(t, 1)

	gomock.InOrder(
		api.messages.EXPECT().Conversation(gomock.Any(), int64(1), int64(2), uint64(50)).Return([]models.ConversationMessage{}, nil),
		api.messages.EXPECT().MarkRead(gomock.Any(), int64(1), int64(2)).Return(int64(0), nil),
	)

	rec := api.do(t, http.MethodGet, "/api/messages/conversation/2", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/messages/conversation/x", "", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_Chats(t *testing.T) {
	api := newTestAPI(t)
	token := api.signIn(t, 1)

	api.messages.EXPECT().Chats(gomock.Any(), int64(1)).Return([]models.Chat{{UserID: 2, Name: "Luis", UnreadCount: 3}}, nil)

	rec := api.do(t, http.MethodGet, "/api/messages/chats", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decodeEnvelope(t, rec).Data), `"unread_count":3`)
}

// ── Mux-level endpoints ──────────────────────────────────────────────────────

func TestAPI_HealthzAndVersion(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = api.do(t, http.MethodGet, "/version", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"version":"1.0.0","date":"2026-03-01","commit":"abc"}`, rec.Body.String())
}

func TestAPI_Preflight(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodOptions, "/api/rides", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PUT")
	assert.Empty(t, rec.Body.String())
}

func TestAPI_UnknownRoute(t *testing.T) {
	api := newTestAPI(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/nothing"},
		{http.MethodDelete, "/api/rides/5"},
		{http.MethodPost, "/healthz"},
	} {
		rec := api.do(t, tc.method, tc.path, "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code, tc.method+" "+tc.path)
		assert.JSONEq(t, `{"success":false,"message":"route not found","errors":{}}`, rec.Body.String())
	}
}

func TestAPI_TraceIDEchoed(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(traceIDHeader, "trace-123")
	rec := httptest.NewRecorder()
	api.mux.ServeHTTP(rec, req)

	assert.Equal(t, "trace-123", rec.Header().Get(traceIDHeader))
}
