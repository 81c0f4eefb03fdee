package partner

import (
	"context"

	"github.com/finmanager/backend/internal/domain/shared"
)

// SupplierRepository defines persistence for suppliers and their user links
type SupplierRepository interface {
	// FindForUser finds a supplier linked to the user
	FindForUser(ctx context.Context, userID, id int64) (*Supplier, error)

	// FindAllForUser lists linked suppliers; filter.Search matches name,
	// phone, email and address
	FindAllForUser(ctx context.Context, userID int64, filter shared.Filter) ([]Supplier, error)

	// CountForUser counts linked suppliers matching filter.Search
	CountForUser(ctx context.Context, userID int64, filter shared.Filter) (int64, error)

	// ExistsByNameForUser checks for a linked supplier with the name,
	// ignoring excludeID when it is non-zero
	ExistsByNameForUser(ctx context.Context, userID int64, name string, excludeID int64) (bool, error)

	// CreateForUser inserts the supplier and links it to the user
	CreateForUser(ctx context.Context, userID int64, supplier *Supplier) error

	// Save updates a supplier
	Save(ctx context.Context, supplier *Supplier) error

	// Delete removes the supplier and every user link
	Delete(ctx context.Context, id int64) error

	// HasPurchases reports whether any purchase references the supplier
	HasPurchases(ctx context.Context, id int64) (bool, error)
}
