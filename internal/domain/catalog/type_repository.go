package catalog

import (
	"context"

	"github.com/finmanager/backend/internal/domain/shared"
)

// TypeRepository defines persistence for owner-scoped types
type TypeRepository interface {
	// FindForOwner finds a type owned by ownerID
	FindForOwner(ctx context.Context, ownerID, id int64) (*Type, error)

	// FindAllForOwner lists types ordered by id; filter.Search matches the name
	FindAllForOwner(ctx context.Context, ownerID int64, filter shared.Filter) ([]Type, error)

	// ExistsByName checks for a type with the name, ignoring excludeID when non-zero
	ExistsByName(ctx context.Context, ownerID int64, name string, excludeID int64) (bool, error)

	Create(ctx context.Context, t *Type) error
	Save(ctx context.Context, t *Type) error

	// Delete removes the type and clears it from the owner's purchases
	// and sales in one transaction
	Delete(ctx context.Context, ownerID, id int64) error
}
