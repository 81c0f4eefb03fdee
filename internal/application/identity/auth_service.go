package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/finmanager/backend/internal/domain/identity"
	"github.com/finmanager/backend/internal/domain/shared"
	"github.com/finmanager/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// PublicKeyAlgorithm names the padding clients must encrypt passwords with
const PublicKeyAlgorithm = "RSA-PKCS1v15"

// TokenTypeBearer is the token_type of issued tokens
const TokenTypeBearer = "bearer"

var (
	ErrEmailRegistered       = shared.NewDomainError("INVALID_INPUT", "Email already registered")
	ErrCompanyNameRequired   = shared.NewDomainError("INVALID_INPUT", "Company name is required")
	ErrInvalidEncrypted      = shared.NewDomainError("INVALID_INPUT", "Invalid encrypted password")
	ErrIncorrectCredentials  = shared.NewDomainError("UNAUTHORIZED", "Incorrect email or password")
	ErrInactiveUser          = shared.NewDomainError("UNAUTHORIZED", "Inactive user")
	ErrCouldNotValidateToken = shared.NewDomainError("UNAUTHORIZED", "Could not validate credentials")
)

// AuthService handles registration, login and profile changes
type AuthService struct {
	userRepo   identity.UserRepository
	keys       *auth.KeyPair
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	keys *auth.KeyPair,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		keys:       keys,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates an active account
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*identity.User, error) {
	email := strings.TrimSpace(req.Email)
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailRegistered
	}

	var companyName *string
	if req.CompanyName != nil {
		companyName = shared.NullIfBlank(req.CompanyName)
		if companyName == nil {
			return nil, ErrCompanyNameRequired
		}
	}

	password, err := s.keys.DecryptPassword(req.EncPassword)
	if err != nil {
		s.logger.Warn("Password decryption failed during registration", zap.Error(err))
		return nil, ErrInvalidEncrypted
	}

	user, err := identity.NewUser(email, password, companyName)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, ErrEmailRegistered
		}
		return nil, err
	}

	s.logger.Info("User registered", zap.Int64("user_id", user.ID))
	return user, nil
}

// Login verifies credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	password, err := s.keys.DecryptPassword(req.EncPassword)
	if err != nil {
		s.logger.Warn("Password decryption failed during login")
		return nil, ErrIncorrectCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrIncorrectCredentials
		}
		return nil, err
	}
	if !user.VerifyPassword(password) {
		s.logger.Warn("Invalid password attempt", zap.Int64("user_id", user.ID))
		return nil, ErrIncorrectCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	token, err := s.jwtService.GenerateAccessToken(user.Email)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{AccessToken: token, TokenType: TokenTypeBearer}, nil
}

// UserByEmail resolves a token subject to an active user
func (s *AuthService) UserByEmail(ctx context.Context, email string) (*identity.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrCouldNotValidateToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrCouldNotValidateToken
	}
	return user, nil
}

// ChangePassword replaces the password after checking the current one
func (s *AuthService) ChangePassword(ctx context.Context, user *identity.User, req ChangePasswordRequest) error {
	current, err := s.keys.DecryptPassword(req.EncCurrentPassword)
	if err != nil {
		return ErrInvalidEncrypted
	}
	next, err := s.keys.DecryptPassword(req.EncNewPassword)
	if err != nil {
		return ErrInvalidEncrypted
	}

	if err := user.ChangePassword(current, next); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("Password changed", zap.Int64("user_id", user.ID))
	return nil
}

// UpdateProfile changes the login email and company name. A new email
// invalidates existing tokens, so a replacement token is returned.
func (s *AuthService) UpdateProfile(ctx context.Context, user *identity.User, req UpdateProfileRequest) (*ProfileUpdateResult, error) {
	result := &ProfileUpdateResult{User: user}
	emailChanged := false

	if req.Email.IsSpecified() {
		email := strings.TrimSpace(req.Email.Value())
		if email != user.Email {
			if email != "" {
				exists, err := s.userRepo.ExistsByEmail(ctx, email)
				if err != nil {
					return nil, err
				}
				if exists {
					return nil, ErrEmailRegistered
				}
			}
			if err := user.ChangeEmail(email); err != nil {
				return nil, err
			}
			emailChanged = true
		}
	}
	if req.CompanyName.IsSpecified() {
		user.SetCompanyName(req.CompanyName.Ptr())
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, ErrEmailRegistered
		}
		return nil, err
	}

	if emailChanged {
		token, err := s.jwtService.GenerateAccessToken(user.Email)
		if err != nil {
			return nil, err
		}
		result.NewToken = token
	}
	return result, nil
}

// PublicKey returns the PEM encoded password transport key
func (s *AuthService) PublicKey() PublicKeyResponse {
	return PublicKeyResponse{Alg: PublicKeyAlgorithm, PEM: s.keys.PublicKeyPEM()}
}
