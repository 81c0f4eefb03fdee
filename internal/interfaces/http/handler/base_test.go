package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finmanager/backend/internal/domain/shared"
	"github.com/finmanager/backend/internal/interfaces/http/dto"
	"github.com/finmanager/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*gin.Context)
		expected string
	}{
		{
			name:     "from context",
			setup:    func(c *gin.Context) { c.Set(middleware.RequestIDKey, "ctx-id") },
			expected: "ctx-id",
		},
		{
			name:     "from header when context empty",
			setup:    func(c *gin.Context) { c.Request.Header.Set("X-Request-ID", "header-id") },
			expected: "header-id",
		},
		{
			name:     "empty when not set",
			setup:    func(c *gin.Context) {},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(http.MethodGet, "/")
			tt.setup(c)
			assert.Equal(t, tt.expected, getRequestID(c))
		})
	}
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantDetail string
	}{
		{"not found", shared.NewDomainError("NOT_FOUND", "Company not found"), http.StatusNotFound, dto.ErrCodeNotFound, "Company not found"},
		{"invalid input", shared.NewDomainError("INVALID_INPUT", "Total price must equal items count times unit price"), http.StatusBadRequest, dto.ErrCodeInvalidInput, "Total price must equal items count times unit price"},
		{"already exists", shared.NewDomainError("ALREADY_EXISTS", "Type already exists"), http.StatusConflict, dto.ErrCodeAlreadyExists, "Type already exists"},
		{"forbidden", shared.ErrForbidden, http.StatusForbidden, dto.ErrCodeForbidden, shared.ErrForbidden.Message},
		{"unavailable", shared.NewDomainError("SERVICE_UNAVAILABLE", "Image storage is not configured"), http.StatusServiceUnavailable, dto.ErrCodeServiceUnavailable, "Image storage is not configured"},
		{"wrapped domain error", fmt.Errorf("lookup: %w", shared.ErrNotFound), http.StatusNotFound, dto.ErrCodeNotFound, shared.ErrNotFound.Message},
		{"unknown error", errors.New("connection reset"), http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(http.MethodGet, "/")
			c.Set(middleware.RequestIDKey, "req-1")

			h := &BaseHandler{}
			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, tt.wantCode, body["code"])
			assert.Equal(t, tt.wantDetail, body["detail"])
			assert.Equal(t, "req-1", body["request_id"])
		})
	}
}

func TestBaseHandler_HandleError_UnauthorizedChallenge(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "/")

	h := &BaseHandler{}
	h.HandleError(c, shared.NewDomainError("UNAUTHORIZED", "Incorrect email or password"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get(middleware.WWWAuthenticate))
}

func TestBaseHandler_HandleError_Nil(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "/")

	h := &BaseHandler{}
	h.HandleError(c, nil)

	assert.False(t, c.Writer.Written())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBaseHandler_OK(t *testing.T) {
	c, w := newTestContext(http.MethodDelete, "/")

	h := &BaseHandler{}
	h.OK(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestBaseHandler_PathID(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		c, _ := newTestContext(http.MethodGet, "/companies/42")
		c.Params = gin.Params{{Key: "id", Value: "42"}}

		h := &BaseHandler{}
		id, ok := h.pathID(c, "id")

		assert.True(t, ok)
		assert.Equal(t, int64(42), id)
	})

	t.Run("not an integer", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/companies/abc")
		c.Params = gin.Params{{Key: "id", Value: "abc"}}

		h := &BaseHandler{}
		_, ok := h.pathID(c, "id")

		assert.False(t, ok)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeValidation, body["code"])
		details := body["detail"].([]any)
		require.Len(t, details, 1)
		assert.Equal(t, "id", details[0].(map[string]any)["field"])
	})
}

func TestListQuery(t *testing.T) {
	t.Run("binds paging and company filter", func(t *testing.T) {
		c, _ := newTestContext(http.MethodGet, "/customers?skip=20&limit=10&q=acme&company_id=0")

		h := &BaseHandler{}
		var q ListQuery
		require.True(t, h.bindQuery(c, &q))

		assert.Equal(t, shared.Filter{Skip: 20, Limit: 10, Search: "acme"}, q.Filter())
		require.NotNil(t, q.CompanyID)
		assert.Equal(t, int64(0), *q.CompanyID)
	})

	t.Run("company filter absent", func(t *testing.T) {
		c, _ := newTestContext(http.MethodGet, "/customers")

		h := &BaseHandler{}
		var q ListQuery
		require.True(t, h.bindQuery(c, &q))
		assert.Nil(t, q.CompanyID)
	})

	t.Run("limit out of range", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/companies?limit=5000")

		h := &BaseHandler{}
		var q ListQuery
		assert.False(t, h.bindQuery(c, &q))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
