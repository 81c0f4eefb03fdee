package handler

import (
	identityapp "github.com/finmanager/backend/internal/application/identity"
	"github.com/finmanager/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration, login and the caller's own account
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a vendor account
func (h *AuthHandler) Register(c *gin.Context) {
	var req identityapp.RegisterRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, identityapp.ToUserResponse(user))
}

// Login exchanges encrypted credentials for an access token
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, token)
}

// Me returns the authenticated account
func (h *AuthHandler) Me(c *gin.Context) {
	h.Success(c, identityapp.ToUserResponse(currentUser(c)))
}

// ChangePassword replaces the caller's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req identityapp.ChangePasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), currentUser(c), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}

// PublicKey publishes the key clients encrypt passwords with
func (h *AuthHandler) PublicKey(c *gin.Context) {
	h.Success(c, h.authService.PublicKey())
}

// UpdateProfile changes the caller's email and company name. A changed
// email is the token subject, so a new token is sent in X-New-Token.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req identityapp.UpdateProfileRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.authService.UpdateProfile(c.Request.Context(), currentUser(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if result.NewToken != "" {
		c.Header(middleware.NewTokenHeader, result.NewToken)
	}
	h.OK(c)
}
