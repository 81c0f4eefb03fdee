package identity

import "context"

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create inserts a new user
	Create(ctx context.Context, user *User) error

	// Update persists changes to an existing user
	Update(ctx context.Context, user *User) error

	// FindByID finds a user by its ID
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindByEmail finds a user by login email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail checks whether an email is already registered
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
