package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/finmanager/backend/internal/domain/identity"
	"github.com/finmanager/backend/internal/domain/shared"
	"github.com/finmanager/backend/internal/infrastructure/logger"
	"github.com/finmanager/backend/internal/interfaces/http/dto"
	"github.com/finmanager/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// Success sends a 200 response with data as the body
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// OK acknowledges a mutation with {"ok": true}
func (h *BaseHandler) OK(c *gin.Context) {
	c.JSON(http.StatusOK, dto.OK)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// Unauthorized sends a 401 with the Bearer challenge
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	c.Header(middleware.WWWAuthenticate, "Bearer")
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// ValidationError answers a failed request bind
func (h *BaseHandler) ValidationError(c *gin.Context, err error) {
	middleware.HandleValidationError(c, err)
}

// HandleError converts domain errors to HTTP responses. Anything else is
// logged and reported as a 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		statusCode := dto.GetHTTPStatus(code)
		if statusCode == http.StatusUnauthorized {
			c.Header(middleware.WWWAuthenticate, "Bearer")
		}
		if statusCode >= http.StatusInternalServerError {
			logger.GetGinLogger(c).Error("Request failed", zap.Error(err))
		}
		h.Error(c, statusCode, code, domainErr.Message)
		return
	}

	logger.GetGinLogger(c).Error("Unexpected error", zap.Error(err))
	_ = c.Error(err)
	h.InternalError(c, "An unexpected error occurred")
}

// currentUser returns the user set by the JWT middleware
func currentUser(c *gin.Context) *identity.User {
	return middleware.GetCurrentUser(c)
}

// pathID parses the named path parameter. An invalid value is answered
// with 422 and false is returned.
func (h *BaseHandler) pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.NewValidationErrorResponse(getRequestID(c), []dto.ValidationDetail{
			{Field: name, Message: "Must be an integer"},
		}))
		return 0, false
	}
	return id, true
}

// ListQuery carries the paging and search parameters of the simple list
// endpoints
type ListQuery struct {
	Skip      int    `form:"skip" binding:"omitempty,min=0"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=1000"`
	Q         string `form:"q" binding:"omitempty,max=255"`
	CompanyID *int64 `form:"company_id"`
}

// Filter converts the query into a repository filter
func (q ListQuery) Filter() shared.Filter {
	return shared.Filter{Skip: q.Skip, Limit: q.Limit, Search: q.Q}
}

// bindQuery binds the list query, answering 422 on failure
func (h *BaseHandler) bindQuery(c *gin.Context, query any) bool {
	if err := c.ShouldBindQuery(query); err != nil {
		h.ValidationError(c, err)
		return false
	}
	return true
}

// bindJSON binds the JSON body, answering 422 (or 413) on failure
func (h *BaseHandler) bindJSON(c *gin.Context, body any) bool {
	if err := c.ShouldBindJSON(body); err != nil {
		h.ValidationError(c, err)
		return false
	}
	return true
}
