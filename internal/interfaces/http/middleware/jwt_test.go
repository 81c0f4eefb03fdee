package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finmanager/backend/internal/domain/identity"
	"github.com/finmanager/backend/internal/domain/shared"
	"github.com/finmanager/backend/internal/infrastructure/auth"
	"github.com/finmanager/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserResolver struct {
	mock.Mock
}

func (m *mockUserResolver) UserByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func newTestJWTService(expiration, threshold time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: expiration,
		RefreshThreshold:      threshold,
	})
}

func testUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("vendor@example.com", "s3cret-pass", nil)
	require.NoError(t, err)
	user.ID = 42
	return user
}

func guardedRouter(jwtService *auth.JWTService, users UserResolver) *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	router.Use(JWTAuthMiddleware(jwtService, users))
	router.GET("/me", func(c *gin.Context) {
		user := GetCurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID, "email": user.Email})
	})
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "up")
	})
	return router
}

func call(router *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set(AuthHeaderKey, authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	jwtService := newTestJWTService(time.Hour, 10*time.Minute)
	token, err := jwtService.GenerateAccessToken("vendor@example.com")
	require.NoError(t, err)

	users := new(mockUserResolver)
	users.On("UserByEmail", mock.Anything, "vendor@example.com").Return(testUser(t), nil)

	w := call(guardedRouter(jwtService, users), "/me", "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":42,"email":"vendor@example.com"}`, w.Body.String())
	assert.Empty(t, w.Header().Get(NewTokenHeader))
}

func TestJWTAuthMiddleware_SlidingRefresh(t *testing.T) {
	// every token is inside the refresh window
	jwtService := newTestJWTService(5*time.Minute, 10*time.Minute)
	token, err := jwtService.GenerateAccessToken("vendor@example.com")
	require.NoError(t, err)

	users := new(mockUserResolver)
	users.On("UserByEmail", mock.Anything, "vendor@example.com").Return(testUser(t), nil)

	w := call(guardedRouter(jwtService, users), "/me", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)

	fresh := w.Header().Get(NewTokenHeader)
	require.NotEmpty(t, fresh)
	assert.NotEqual(t, token, fresh)
	claims, err := jwtService.ValidateToken(fresh)
	require.NoError(t, err)
	assert.Equal(t, "vendor@example.com", claims.Subject)

	// the old token keeps working
	assert.Equal(t, http.StatusOK, call(guardedRouter(jwtService, users), "/me", "Bearer "+token).Code)
}

func TestJWTAuthMiddleware_Rejections(t *testing.T) {
	jwtService := newTestJWTService(time.Hour, 10*time.Minute)
	valid, err := jwtService.GenerateAccessToken("gone@example.com")
	require.NoError(t, err)
	expired, err := newTestJWTService(-time.Minute, 0).GenerateAccessToken("vendor@example.com")
	require.NoError(t, err)
	foreign, err := auth.NewJWTService(config.JWTConfig{Secret: "another-secret-another-secret-xx", AccessTokenExpiration: time.Hour}).
		GenerateAccessToken("vendor@example.com")
	require.NoError(t, err)

	users := new(mockUserResolver)
	users.On("UserByEmail", mock.Anything, "gone@example.com").
		Return(nil, shared.NewDomainError("UNAUTHORIZED", "Could not validate credentials"))

	tests := []struct {
		name          string
		authorization string
		message       string
	}{
		{"missing header", "", MsgNotAuthenticated},
		{"wrong scheme", "Basic dXNlcjpwYXNz", MsgNotAuthenticated},
		{"empty bearer", "Bearer ", MsgNotAuthenticated},
		{"expired", "Bearer " + expired, MsgTokenExpired},
		{"bad signature", "Bearer " + foreign, MsgBadCredentials},
		{"garbage", "Bearer not.a.jwt", MsgBadCredentials},
		{"unknown user", "Bearer " + valid, MsgBadCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(guardedRouter(jwtService, users), "/me", tt.authorization)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Bearer", w.Header().Get(WWWAuthenticate))
			assert.Contains(t, w.Body.String(), `"detail":"`+tt.message+`"`)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestJWTAuthMiddleware_LookupFailure(t *testing.T) {
	jwtService := newTestJWTService(time.Hour, 10*time.Minute)
	token, err := jwtService.GenerateAccessToken("vendor@example.com")
	require.NoError(t, err)

	users := new(mockUserResolver)
	users.On("UserByEmail", mock.Anything, "vendor@example.com").Return(nil, errors.New("database is locked"))

	w := call(guardedRouter(jwtService, users), "/me", "Bearer "+token)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestJWTAuthMiddleware_PublicPaths(t *testing.T) {
	users := new(mockUserResolver)
	w := call(guardedRouter(newTestJWTService(time.Hour, time.Minute), users), "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	users.AssertNotCalled(t, "UserByEmail", mock.Anything, mock.Anything)
}
