package test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"personalblog/internal/config"
	handlers "personalblog/internal/handler"
	"personalblog/internal/middleware"
	"personalblog/internal/models"
	"personalblog/internal/service"
)

const validToken = "valid-token"

var testUser = &models.User{
	UserID:    "user-a",
	Email:     "a@x.com",
	Surname:   "A",
	CreatedAt: time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
}

type testServer struct {
	handler  http.Handler
	auth     *MockAuthService
	posts    *MockPostService
	comments *MockCommentService
	contact  *MockContactService
	stats    *MockStatsService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	s := &testServer{
		auth:     new(MockAuthService),
		posts:    new(MockPostService),
		comments: new(MockCommentService),
		contact:  new(MockContactService),
		stats:    new(MockStatsService),
	}

	cfg := &config.Config{
		SessionSecret:   "test-secret-0123456789",
		SessionDuration: time.Hour,
		MaxUploadSize:   1 << 20,
	}

	h, err := handlers.NewHandlers(&service.Service{
		Auth:    s.auth,
		Post:    s.posts,
		Comment: s.comments,
		Contact: s.contact,
		Stats:   s.stats,
	}, cfg)
	require.NoError(t, err)

	s.auth.On("SessionUser", mock.Anything, validToken).Return(testUser, nil).Maybe()
	s.handler = h.Router()
	return s
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func get(path string) *http.Request {
	return httptest.NewRequest(http.MethodGet, path, nil)
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func loggedIn(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: validToken})
	return req
}

func identityOf(user *models.User) interface{} {
	return mock.MatchedBy(func(i models.Identity) bool {
		return i.UserID() == user.UserID
	})
}

func TestNewHandlers(t *testing.T) {
	h, err := handlers.NewHandlers(&service.Service{Auth: new(MockAuthService)}, &config.Config{})

	require.NoError(t, err)
	assert.NotNil(t, h.AuthService)
	assert.NotNil(t, h.Validate)
	assert.NotNil(t, h.Router())
}

func TestStaticAssets(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(get("/static/styles.css"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/css")
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(get("/no/such/page"))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "does not exist")
}

func TestAbout(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(get("/about"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "About Me")
}

func TestHealthHandler(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		s := newTestServer(t)
		s.stats.On("Health", mock.Anything).Return(&service.Health{
			Status:   "ok",
			Database: "up",
			Counts:   &models.Counts{Users: 1, Posts: 2, Comments: 3},
		}, nil)

		rr := s.do(get("/health"))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"status":"ok","database":"up","counts":{"users":1,"posts":2,"comments":3}}`, rr.Body.String())
	})

	t.Run("database down", func(t *testing.T) {
		s := newTestServer(t)
		s.stats.On("Health", mock.Anything).Return(&service.Health{Status: "unavailable", Database: "down"}, assert.AnError)

		rr := s.do(get("/health"))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.JSONEq(t, `{"status":"unavailable","database":"down"}`, rr.Body.String())
	})
}
