package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clickmee/internal/domain"
	"clickmee/internal/service"
	"clickmee/internal/testutil"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	router   *mux.Router
	repo     *testutil.MockUserRepository
	notifier *testutil.MockNotifier
	auth     *service.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	repo := new(testutil.MockUserRepository)
	notifier := new(testutil.MockNotifier)
	logger := testutil.NewTestLogger()

	authService := service.NewAuthService(repo, time.Hour)
	clickService := service.NewClickService(repo, notifier, logger)
	profileService := service.NewProfileService(repo, logger)
	leaderboardService := service.NewLeaderboardService(repo)

	h := NewHandler(authService, clickService, profileService, leaderboardService, logger)

	router := mux.NewRouter()
	h.RegisterRoutes(router)

	return &testServer{
		router:   router,
		repo:     repo,
		notifier: notifier,
		auth:     authService,
	}
}

// login seeds the mock store with a user and returns a bearer token
func (s *testServer) login(t *testing.T, user *domain.User) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	assert.NoError(t, err)

	s.repo.On("GetByEmail", user.Email).Return(user, string(hash), nil).Once()

	session, err := s.auth.Login(user.Email, "s3cret")
	assert.NoError(t, err)
	return session.Token
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestHandleClick_NoSession(t *testing.T) {
	server := newTestServer(t)

	rec := server.do(http.MethodPost, "/api/v1/click", "", clickRequest{IsTrusted: true})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "auth_required")
}

func TestHandleClick_TrustedClick(t *testing.T) {
	server := newTestServer(t)

	user := testutil.NewTestUser("u-1", 41, false)
	token := server.login(t, user)

	server.repo.On("GetByID", "u-1").Return(user, nil).Once()
	server.repo.On("IncrementScore", "u-1").Return(nil).Maybe()
	server.notifier.On("ScoreUpdated", "u-1", mock.Anything).Return().Maybe()
	server.notifier.On("ClickEffect", "u-1", 10, 20).Return().Once()
	server.notifier.On("ClickEffectCleared", "u-1").Return().Maybe()

	rec := server.do(http.MethodPost, "/api/v1/click", token, clickRequest{IsTrusted: true, X: 10, Y: 20})

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp clickResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.Score)
	assert.Equal(t, 1, resp.Combo)
}

func TestHandleClick_UntrustedClickSuspends(t *testing.T) {
	server := newTestServer(t)

	user := testutil.NewTestUser("u-1", 41, false)
	token := server.login(t, user)

	server.repo.On("GetByID", "u-1").Return(user, nil).Once()
	server.repo.On("Suspend", "u-1").Return(nil).Maybe()
	server.notifier.On("Suspended", "u-1").Return().Once()

	rec := server.do(http.MethodPost, "/api/v1/click", token, clickRequest{IsTrusted: false})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "suspended")

	// The suspension holds for every later click
	rec = server.do(http.MethodPost, "/api/v1/click", token, clickRequest{IsTrusted: true})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandleClick_InvalidBody(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/click", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	server.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleMe(t *testing.T) {
	server := newTestServer(t)

	user := testutil.NewTestUser("u-1", 41, false)
	user.FullName = "Jane Doe"
	token := server.login(t, user)

	server.repo.On("GetByID", "u-1").Return(user, nil).Once()
	server.repo.On("UpdateIdentity", "u-1", "Jane Doe", "").Return(nil).Once()

	rec := server.do(http.MethodGet, "/api/v1/me", token, nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp profileResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "u-1", resp.ID)
	assert.Equal(t, "Jane Doe", resp.Username)
	assert.Equal(t, int64(41), resp.Score)

	server.repo.AssertExpectations(t)
}

func TestHandleMe_NoSession(t *testing.T) {
	server := newTestServer(t)

	rec := server.do(http.MethodGet, "/api/v1/me", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleLogout(t *testing.T) {
	server := newTestServer(t)

	user := testutil.NewTestUser("u-1", 41, false)
	token := server.login(t, user)

	rec := server.do(http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// The token no longer resolves
	rec = server.do(http.MethodGet, "/api/v1/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleRegister(t *testing.T) {
	server := newTestServer(t)

	server.repo.On("Create", mock.AnythingOfType("*domain.User"), mock.AnythingOfType("string")).
		Return(nil).
		Once()

	rec := server.do(http.MethodPost, "/api/v1/auth/register", "", registerRequest{
		Email:    "jane@example.com",
		Password: "s3cret",
		FullName: "Jane Doe",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp profileResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Regexp(t, `^User_\d{4}$`, resp.Username)
	server.repo.AssertExpectations(t)
}

func TestHandleRegister_EmailTaken(t *testing.T) {
	server := newTestServer(t)

	server.repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrEmailTaken).Once()

	rec := server.do(http.MethodPost, "/api/v1/auth/register", "", registerRequest{
		Email:    "jane@example.com",
		Password: "s3cret",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleLogin_InvalidCredentials(t *testing.T) {
	server := newTestServer(t)

	server.repo.On("GetByEmail", "nobody@example.com").Return(nil, "", domain.ErrUserNotFound)

	rec := server.do(http.MethodPost, "/api/v1/auth/login", "", loginRequest{
		Email:    "nobody@example.com",
		Password: "s3cret",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleLeaderboard(t *testing.T) {
	server := newTestServer(t)

	entries := []domain.LeaderboardEntry{
		{Rank: 1, UserID: "u-1", Username: "Jane Doe", Score: 100},
		{Rank: 2, UserID: "u-2", Username: "User_5678", Score: 42},
	}
	server.repo.On("TopByScore", 10).Return(entries, nil)

	rec := server.do(http.MethodGet, "/api/v1/leaderboard", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []domain.LeaderboardEntry
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, entries, resp)
}
