package auth

import (
	"errors"
	"time"

	"github.com/finmanager/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrMissingSubject = errors.New("missing subject in claims")
)

// Claims are the access token claims. The subject is the user's email.
type Claims struct {
	jwt.RegisteredClaims
}

// RemainingTTL returns the time left until expiry at now, never negative
func (c *Claims) RemainingTTL(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	remaining := c.ExpiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// JWTService issues and validates stateless HS256 access tokens
type JWTService struct {
	secret           []byte
	expiration       time.Duration
	refreshThreshold time.Duration
	now              func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:           []byte(cfg.Secret),
		expiration:       cfg.AccessTokenExpiration,
		refreshThreshold: cfg.RefreshThreshold,
		now:              time.Now,
	}
}

// GenerateAccessToken signs a token for the given subject
func (s *JWTService) GenerateAccessToken(subject string) (string, error) {
	now := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ValidateToken verifies the signature and expiry of a token
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}

// NeedsRefresh reports whether the token is close enough to expiry that a
// replacement should be issued
func (s *JWTService) NeedsRefresh(claims *Claims) bool {
	return claims.RemainingTTL(s.now()) < s.refreshThreshold
}

// AccessTokenExpiration returns the lifetime of issued tokens
func (s *JWTService) AccessTokenExpiration() time.Duration {
	return s.expiration
}
