package partner

import (
	"context"

	"github.com/finmanager/backend/internal/domain/shared"
)

// CompanyRepository defines persistence for companies and their user links
type CompanyRepository interface {
	// FindForUser finds a company linked to the user
	FindForUser(ctx context.Context, userID, id int64) (*Company, error)

	// FindAllForUser lists companies linked to the user, name filtered by filter.Search
	FindAllForUser(ctx context.Context, userID int64, filter shared.Filter) ([]Company, error)

	// FindByNameForUser finds a linked company by exact name
	FindByNameForUser(ctx context.Context, userID int64, name string) (*Company, error)

	// IsLinked reports whether the company is linked to the user
	IsLinked(ctx context.Context, userID, id int64) (bool, error)

	// CreateForUser inserts the company and links it to the user
	CreateForUser(ctx context.Context, userID int64, company *Company) error

	// Save updates a company
	Save(ctx context.Context, company *Company) error

	// Delete removes the company and every user link
	Delete(ctx context.Context, id int64) error

	// HasCustomers reports whether any customer references the company
	HasCustomers(ctx context.Context, id int64) (bool, error)

	// HasDepartments reports whether any department references the company
	HasDepartments(ctx context.Context, id int64) (bool, error)
}
