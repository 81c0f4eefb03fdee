package trade

import "context"

// PurchaseRepository defines persistence for owner-scoped purchases
type PurchaseRepository interface {
	// FindForOwner finds a purchase owned by ownerID
	FindForOwner(ctx context.Context, ownerID, id int64) (*Purchase, error)

	// List returns one page of matching purchases ordered by date desc,
	// id desc, together with the unpaged count
	List(ctx context.Context, ownerID int64, filter ListFilter) ([]Purchase, int64, error)

	Create(ctx context.Context, p *Purchase) error
	Save(ctx context.Context, p *Purchase) error
	Delete(ctx context.Context, ownerID, id int64) error
}

// SaleRepository defines persistence for owner-scoped sales
type SaleRepository interface {
	// FindForOwner finds a sale owned by ownerID
	FindForOwner(ctx context.Context, ownerID, id int64) (*Sale, error)

	// List returns one page of matching sales ordered by date desc,
	// id desc, together with the unpaged count
	List(ctx context.Context, ownerID int64, filter ListFilter) ([]Sale, int64, error)

	Create(ctx context.Context, s *Sale) error
	Save(ctx context.Context, s *Sale) error
	Delete(ctx context.Context, ownerID, id int64) error
}
