package partner

import (
	"context"

	"github.com/finmanager/backend/internal/domain/partner"
	"github.com/finmanager/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SupplierService handles supplier business operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
	logger       *zap.Logger
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository, logger *zap.Logger) *SupplierService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupplierService{supplierRepo: supplierRepo, logger: logger}
}

// List returns the user's suppliers ordered by id
func (s *SupplierService) List(ctx context.Context, userID int64, filter shared.Filter) ([]SupplierResponse, error) {
	suppliers, err := s.supplierRepo.FindAllForUser(ctx, userID, filter.Normalize(shared.DefaultLimit))
	if err != nil {
		return nil, err
	}
	out := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		out[i] = ToSupplierResponse(&suppliers[i])
	}
	return out, nil
}

// Count returns how many of the user's suppliers match filter.Search
func (s *SupplierService) Count(ctx context.Context, userID int64, filter shared.Filter) (int64, error) {
	return s.supplierRepo.CountForUser(ctx, userID, filter)
}

// Create adds a supplier whose name is unique among the user's suppliers
func (s *SupplierService) Create(ctx context.Context, userID int64, req CreateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(req.Name, req.PhoneNumber, req.Email, req.Address)
	if err != nil {
		return nil, err
	}
	exists, err := s.supplierRepo.ExistsByNameForUser(ctx, userID, supplier.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSupplierExists
	}

	if err := s.supplierRepo.CreateForUser(ctx, userID, supplier); err != nil {
		return nil, err
	}
	s.logger.Info("Supplier created", zap.Int64("supplier_id", supplier.ID), zap.Int64("user_id", userID))

	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// Get returns a linked supplier
func (s *SupplierService) Get(ctx context.Context, userID, id int64) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindForUser(ctx, userID, id)
	if err != nil {
		return nil, notFound(err, ErrSupplierNotFound)
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// Update applies the present fields; a rename must stay unique
func (s *SupplierService) Update(ctx context.Context, userID, id int64, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindForUser(ctx, userID, id)
	if err != nil {
		return nil, notFound(err, ErrSupplierNotFound)
	}

	if req.Name.IsSpecified() {
		if err := supplier.Rename(req.Name.Value()); err != nil {
			return nil, err
		}
		exists, err := s.supplierRepo.ExistsByNameForUser(ctx, userID, supplier.Name, supplier.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrSupplierExists
		}
	}
	supplier.SetContact(
		req.PhoneNumber.Apply(supplier.PhoneNumber),
		req.Email.Apply(supplier.Email),
		req.Address.Apply(supplier.Address),
	)

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// Delete removes a supplier no purchase references
func (s *SupplierService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.supplierRepo.FindForUser(ctx, userID, id); err != nil {
		return notFound(err, ErrSupplierNotFound)
	}
	hasPurchases, err := s.supplierRepo.HasPurchases(ctx, id)
	if err != nil {
		return err
	}
	if hasPurchases {
		return ErrSupplierHasPurchases
	}
	if err := s.supplierRepo.Delete(ctx, id); err != nil {
		return notFound(err, ErrSupplierNotFound)
	}
	s.logger.Info("Supplier deleted", zap.Int64("supplier_id", id), zap.Int64("user_id", userID))
	return nil
}
