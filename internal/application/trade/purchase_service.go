package trade

import (
	"context"

	"github.com/finmanager/backend/internal/domain/catalog"
	"github.com/finmanager/backend/internal/domain/partner"
	"github.com/finmanager/backend/internal/domain/report"
	"github.com/finmanager/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// PurchaseService handles purchase business operations
type PurchaseService struct {
	purchaseRepo trade.PurchaseRepository
	refs         *references
	logger       *zap.Logger
}

// NewPurchaseService creates a new PurchaseService. stats may be nil when
// statistics are not cached.
func NewPurchaseService(
	purchaseRepo trade.PurchaseRepository,
	typeRepo catalog.TypeRepository,
	customerRepo partner.CustomerRepository,
	supplierRepo partner.SupplierRepository,
	stats report.StatisticsCache,
	logger *zap.Logger,
) *PurchaseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		refs: &references{
			typeRepo:     typeRepo,
			customerRepo: customerRepo,
			supplierRepo: supplierRepo,
			stats:        stats,
			logger:       logger,
		},
		logger: logger,
	}
}

// List returns one page of the owner's purchases, newest first
func (s *PurchaseService) List(ctx context.Context, ownerID int64, query ListQuery) (*ListResponse[PurchaseResponse], error) {
	filter, err := query.Filter()
	if err != nil {
		return nil, err
	}
	filter, err = filter.Normalize(trade.ValidPurchaseStatus)
	if err != nil {
		return nil, err
	}

	purchases, total, err := s.purchaseRepo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]PurchaseResponse, len(purchases))
	for i := range purchases {
		items[i] = ToPurchaseResponse(&purchases[i])
	}
	return &ListResponse[PurchaseResponse]{Items: items, Total: total}, nil
}

// Create records a purchase after checking the referenced records
func (s *PurchaseService) Create(ctx context.Context, ownerID int64, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	if err := s.refs.checkNew(ctx, ownerID, req.RecordFields); err != nil {
		return nil, err
	}
	if err := s.refs.checkSupplier(ctx, ownerID, req.SupplierID); err != nil {
		return nil, err
	}

	purchase, err := trade.NewPurchase(ownerID, req.details(), req.SupplierID, req.Status)
	if err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, err
	}
	s.refs.invalidate(ctx, ownerID)
	s.logger.Info("Purchase created",
		zap.Int64("purchase_id", purchase.ID),
		zap.Int64("owner_id", ownerID),
		zap.String("total_price", purchase.TotalPrice.StringFixed(2)),
	)

	resp := ToPurchaseResponse(purchase)
	return &resp, nil
}

// Get returns an owned purchase
func (s *PurchaseService) Get(ctx context.Context, ownerID, id int64) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, notFound(err, ErrPurchaseNotFound)
	}
	resp := ToPurchaseResponse(purchase)
	return &resp, nil
}

// Update applies the present fields. The price invariant is re-checked
// when any priced field is present.
func (s *PurchaseService) Update(ctx context.Context, ownerID, id int64, req UpdatePurchaseRequest) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, notFound(err, ErrPurchaseNotFound)
	}

	if err := s.refs.applyPatch(ctx, ownerID, &purchase.Record, req.RecordPatch); err != nil {
		return nil, err
	}
	if req.SupplierID.IsSpecified() {
		if err := s.refs.checkSupplier(ctx, ownerID, req.SupplierID.Ptr()); err != nil {
			return nil, err
		}
		purchase.SetSupplier(req.SupplierID.Ptr())
	}
	if req.Status.IsSpecified() {
		if req.Status.IsNull() {
			return nil, errNullField("status")
		}
		if err := purchase.SetStatus(req.Status.Value()); err != nil {
			return nil, err
		}
	}

	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, err
	}
	s.refs.invalidate(ctx, ownerID)

	resp := ToPurchaseResponse(purchase)
	return &resp, nil
}

// Delete removes an owned purchase
func (s *PurchaseService) Delete(ctx context.Context, ownerID, id int64) error {
	if err := s.purchaseRepo.Delete(ctx, ownerID, id); err != nil {
		return notFound(err, ErrPurchaseNotFound)
	}
	s.refs.invalidate(ctx, ownerID)
	s.logger.Info("Purchase deleted", zap.Int64("purchase_id", id), zap.Int64("owner_id", ownerID))
	return nil
}
