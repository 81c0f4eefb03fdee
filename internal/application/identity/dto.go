package identity

import (
	"time"

	"github.com/finmanager/backend/internal/domain/identity"
	"github.com/finmanager/backend/internal/domain/shared"
)

// RegisterRequest carries a new account. The password is RSA encrypted with
// the server public key and base64 encoded.
type RegisterRequest struct {
	Email       string  `json:"email" binding:"required,email,max=255"`
	EncPassword string  `json:"enc_password" binding:"required"`
	CompanyName *string `json:"company_name"`
}

// LoginRequest carries login credentials
type LoginRequest struct {
	Email       string `json:"email" binding:"required,email"`
	EncPassword string `json:"enc_password" binding:"required"`
}

// ChangePasswordRequest carries both encrypted passwords
type ChangePasswordRequest struct {
	EncCurrentPassword string `json:"enc_current_password" binding:"required"`
	EncNewPassword     string `json:"enc_new_password" binding:"required"`
}

// UpdateProfileRequest applies the fields that are present
type UpdateProfileRequest struct {
	Email       shared.Nullable[string] `json:"email"`
	CompanyName shared.Nullable[string] `json:"company_name"`
}

// UserResponse is the public view of an account
type UserResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	CompanyName *string   `json:"company_name"`
}

// ToUserResponse converts a domain user
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		CompanyName: u.CompanyName,
	}
}

// TokenResponse is returned by a successful login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// PublicKeyResponse publishes the password transport key
type PublicKeyResponse struct {
	Alg string `json:"alg"`
	PEM string `json:"pem"`
}

// ProfileUpdateResult reports a profile change. NewToken is set when the
// email, which is the token subject, changed.
type ProfileUpdateResult struct {
	User     *identity.User
	NewToken string
}
