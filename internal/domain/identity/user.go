package identity

import (
	"net/mail"
	"strings"
	"time"

	"github.com/finmanager/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor for password hashes
var bcryptCost = bcrypt.DefaultCost

// maxPasswordBytes is the longest input bcrypt accepts
const maxPasswordBytes = 72

// User is a vendor account. It owns types, purchases and sales and is linked
// to companies, customers and suppliers through join tables.
type User struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	Email          string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	HashedPassword string    `gorm:"type:varchar(255);not null"`
	CompanyName    *string   `gorm:"type:varchar(255)"`
	IsActive       bool      `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates an active user with a hashed password
func NewUser(email, password string, companyName *string) (*User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:       email,
		CompanyName: companyName,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword replaces the stored hash
func (u *User) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.HashedPassword = string(hash)
	return nil
}

// ChangePassword checks the current password before setting the new one
func (u *User) ChangePassword(currentPassword, newPassword string) error {
	if !u.VerifyPassword(currentPassword) {
		return shared.NewDomainError("INVALID_INPUT", "Current password is incorrect")
	}
	return u.SetPassword(newPassword)
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	if u.HashedPassword == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)) == nil
}

// ChangeEmail sets a new login email
func (u *User) ChangeEmail(email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	u.Email = email
	return nil
}

// SetCompanyName sets or clears the display company name
func (u *User) SetCompanyName(name *string) {
	u.CompanyName = shared.NullIfBlank(name)
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", shared.NewDomainError("INVALID_INPUT", "Email cannot be empty")
	}
	if len(email) > 255 {
		return "", shared.NewDomainError("INVALID_INPUT", "Email cannot exceed 255 characters")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", shared.NewDomainError("INVALID_INPUT", "Invalid email format")
	}
	return email, nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_INPUT", "Password cannot be empty")
	}
	if len(password) > maxPasswordBytes {
		return shared.NewDomainError("INVALID_INPUT", "Password cannot exceed 72 bytes")
	}
	return nil
}
