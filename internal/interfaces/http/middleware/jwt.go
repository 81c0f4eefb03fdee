package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/finmanager/backend/internal/domain/identity"
	"github.com/finmanager/backend/internal/domain/shared"
	"github.com/finmanager/backend/internal/infrastructure/auth"
	"github.com/finmanager/backend/internal/infrastructure/logger"
	"github.com/finmanager/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWT context keys and headers
const (
	JWTClaimsKey    = "jwt_claims"
	CurrentUserKey  = "current_user"
	AuthHeaderKey   = "Authorization"
	BearerPrefix    = "Bearer "
	NewTokenHeader  = "X-New-Token"
	WWWAuthenticate = "WWW-Authenticate"
)

// Messages of the 401 responses
const (
	MsgNotAuthenticated = "Not authenticated"
	MsgTokenExpired     = "Token expired"
	MsgBadCredentials   = "Could not validate credentials"
)

// UserResolver loads the user a token subject refers to
type UserResolver interface {
	UserByEmail(ctx context.Context, email string) (*identity.User, error)
}

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// Users resolves the token subject
	Users UserResolver
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultJWTConfig returns default JWT middleware configuration
func DefaultJWTConfig(jwtService *auth.JWTService, users UserResolver) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		JWTService: jwtService,
		Users:      users,
		SkipPaths: []string{
			"/",
			"/health",
			"/metrics",
			"/auth/register",
			"/auth/login",
			"/auth/pubkey",
		},
	}
}

// JWTAuthMiddleware creates JWT authentication middleware
func JWTAuthMiddleware(jwtService *auth.JWTService, users UserResolver) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(DefaultJWTConfig(jwtService, users))
}

// JWTAuthMiddlewareWithConfig authenticates the bearer token, stores the
// user in the context and, when the token is about to expire, returns a
// fresh one in the X-New-Token header
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, MsgNotAuthenticated)
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerPrefix))
		if tokenString == "" {
			abortUnauthorized(c, MsgNotAuthenticated)
			return
		}

		claims, err := cfg.JWTService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, MsgTokenExpired)
				return
			}
			cfg.Logger.Debug("Rejected bearer token", zap.Error(err), zap.String("path", c.Request.URL.Path))
			abortUnauthorized(c, MsgBadCredentials)
			return
		}

		user, err := cfg.Users.UserByEmail(c.Request.Context(), claims.Subject)
		if err != nil {
			if !errors.Is(err, shared.ErrUnauthorized) {
				cfg.Logger.Error("Failed to load token subject", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, "An unexpected error occurred", c.GetString(RequestIDKey)))
				return
			}
			abortUnauthorized(c, MsgBadCredentials)
			return
		}

		if cfg.JWTService.NeedsRefresh(claims) {
			if fresh, err := cfg.JWTService.GenerateAccessToken(claims.Subject); err == nil {
				c.Header(NewTokenHeader, fresh)
			} else {
				cfg.Logger.Warn("Failed to refresh access token", zap.Error(err))
			}
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(CurrentUserKey, user)

		ctx, _ := logger.WithUser(c.Request.Context(), logger.FromContext(c.Request.Context()), user.ID, user.Email)
		c.Request = c.Request.WithContext(ctx)
		if l, ok := c.Get(logger.GinLoggerKey); ok {
			if zl, ok := l.(*zap.Logger); ok {
				c.Set(logger.GinLoggerKey, zl.With(zap.Int64("user_id", user.ID)))
			}
		}

		c.Next()
	}
}

// abortUnauthorized answers 401 with the Bearer challenge
func abortUnauthorized(c *gin.Context, message string) {
	c.Header(WWWAuthenticate, "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, message, c.GetString(RequestIDKey)))
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetCurrentUser retrieves the authenticated user from gin.Context
func GetCurrentUser(c *gin.Context) *identity.User {
	if u, exists := c.Get(CurrentUserKey); exists {
		if user, ok := u.(*identity.User); ok {
			return user
		}
	}
	return nil
}
