package partner

import (
	"context"

	"github.com/finmanager/backend/internal/domain/shared"
)

// CustomerRepository defines persistence for customers and their user links
type CustomerRepository interface {
	// FindForUser finds a customer linked to the user
	FindForUser(ctx context.Context, userID, id int64) (*Customer, error)

	// FindAllForUser lists linked customers ordered unaffiliated first,
	// then by company and id
	FindAllForUser(ctx context.Context, userID int64, companyID *int64, filter shared.Filter) ([]Customer, error)

	// CreateForUser inserts the customer and links it to the user
	CreateForUser(ctx context.Context, userID int64, customer *Customer) error

	// Save updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Delete removes the customer and every user link
	Delete(ctx context.Context, id int64) error

	// HasTrade reports whether any purchase or sale references the customer
	HasTrade(ctx context.Context, id int64) (bool, error)
}
