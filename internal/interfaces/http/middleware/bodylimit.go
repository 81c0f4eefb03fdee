package middleware

import (
	"net/http"

	"github.com/finmanager/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// BodyLimit caps request bodies at maxBytes. Requests that declare a larger
// Content-Length are refused up front; streamed bodies fail with
// *http.MaxBytesError once the reader crosses the limit.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength <= maxBytes {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
			dto.ErrCodePayloadTooLarge,
			"Request body exceeds maximum allowed size",
			c.GetString(RequestIDKey),
		))
	}
}
