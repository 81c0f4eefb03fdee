package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/finmanager/backend/internal/infrastructure/logger"
	"github.com/finmanager/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.uber.org/zap"
)

// NewRateLimiter creates an in-memory limiter allowing limit requests per
// window for each key
func NewRateLimiter(limit int64, window time.Duration) *limiter.Limiter {
	return limiter.New(memory.NewStore(), limiter.Rate{Period: window, Limit: limit})
}

// RateLimit returns a rate limiting middleware keyed by client IP
func RateLimit(l *limiter.Limiter) gin.HandlerFunc {
	return RateLimitByKey(l, func(c *gin.Context) string {
		return c.ClientIP()
	})
}

// RateLimitByKey returns a rate limiting middleware with custom key extractor.
// Store failures let the request through.
func RateLimitByKey(l *limiter.Limiter, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFunc(c)
		lctx, err := l.Get(c.Request.Context(), key)
		if err != nil {
			logger.GetGinLogger(c).Error("Rate limit check failed", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))

		if lctx.Reached {
			logger.GetGinLogger(c).Warn("Rate limit exceeded", zap.String("key", key), zap.Int64("limit", lctx.Limit))
			c.Header("Retry-After", strconv.FormatInt(max(lctx.Reset-time.Now().Unix(), 1), 10))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRateLimited,
				"Too many requests. Please try again later.",
				c.GetString(RequestIDKey),
			))
			return
		}

		c.Next()
	}
}
