package trade

import (
	"context"
	"errors"

	"github.com/finmanager/backend/internal/domain/catalog"
	"github.com/finmanager/backend/internal/domain/partner"
	"github.com/finmanager/backend/internal/domain/report"
	"github.com/finmanager/backend/internal/domain/shared"
	"github.com/finmanager/backend/internal/domain/trade"
	"go.uber.org/zap"
)

var (
	ErrPurchaseNotFound = shared.NewDomainError("NOT_FOUND", "Purchase not found")
	ErrSaleNotFound     = shared.NewDomainError("NOT_FOUND", "Sale not found")
	ErrTypeNotFound     = shared.NewDomainError("NOT_FOUND", "Type not found")
	ErrCustomerNotFound = shared.NewDomainError("NOT_FOUND", "Customer not found")
	ErrSupplierNotFound = shared.NewDomainError("NOT_FOUND", "Supplier not found")
)

func errNullField(field string) error {
	return shared.NewDomainError("INVALID_INPUT", field+" cannot be null")
}

func notFound(err error, specific *shared.DomainError) error {
	if errors.Is(err, shared.ErrNotFound) {
		return specific
	}
	return err
}

// references checks that the records a purchase or sale points at are
// visible to the owner, and keeps the owner's statistics cache in step
// with trade writes
type references struct {
	typeRepo     catalog.TypeRepository
	customerRepo partner.CustomerRepository
	supplierRepo partner.SupplierRepository
	stats        report.StatisticsCache
	logger       *zap.Logger
}

func (r *references) checkType(ctx context.Context, ownerID int64, typeID *int64) error {
	if typeID == nil {
		return nil
	}
	if _, err := r.typeRepo.FindForOwner(ctx, ownerID, *typeID); err != nil {
		return notFound(err, ErrTypeNotFound)
	}
	return nil
}

func (r *references) checkCustomer(ctx context.Context, ownerID, customerID int64) error {
	if customerID <= 0 {
		return trade.ErrCustomerRequired
	}
	if _, err := r.customerRepo.FindForUser(ctx, ownerID, customerID); err != nil {
		return notFound(err, ErrCustomerNotFound)
	}
	return nil
}

func (r *references) checkSupplier(ctx context.Context, ownerID int64, supplierID *int64) error {
	if supplierID == nil {
		return nil
	}
	if _, err := r.supplierRepo.FindForUser(ctx, ownerID, *supplierID); err != nil {
		return notFound(err, ErrSupplierNotFound)
	}
	return nil
}

func (r *references) checkNew(ctx context.Context, ownerID int64, f RecordFields) error {
	if err := r.checkType(ctx, ownerID, f.TypeID); err != nil {
		return err
	}
	customerID := int64(0)
	if f.CustomerID != nil {
		customerID = *f.CustomerID
	}
	return r.checkCustomer(ctx, ownerID, customerID)
}

// applyPatch validates the referenced records of a patch and applies it
// to rec. Required columns reject an explicit null.
func (r *references) applyPatch(ctx context.Context, ownerID int64, rec *trade.Record, p RecordPatch) error {
	if p.Date.IsSpecified() {
		if p.Date.IsNull() {
			return errNullField("date")
		}
		rec.SetDate(p.Date.Value().Time())
	}
	if p.TypeID.IsSpecified() {
		if err := r.checkType(ctx, ownerID, p.TypeID.Ptr()); err != nil {
			return err
		}
		rec.SetType(p.TypeID.Ptr())
	}
	if p.CustomerID.IsSpecified() {
		if p.CustomerID.IsNull() {
			return trade.ErrCustomerRequired
		}
		if err := r.checkCustomer(ctx, ownerID, p.CustomerID.Value()); err != nil {
			return err
		}
		if err := rec.SetCustomer(p.CustomerID.Value()); err != nil {
			return err
		}
	}
	if p.ItemsCount.IsNull() {
		return errNullField("items_count")
	}
	if p.UnitPrice.IsNull() {
		return errNullField("unit_price")
	}
	if err := rec.Reprice(p.priceChange()); err != nil {
		return err
	}
	rec.ItemName = p.ItemName.Apply(rec.ItemName)
	rec.Notes = p.Notes.Apply(rec.Notes)
	rec.Touch()
	return nil
}

// invalidate drops the owner's cached statistics. A failure leaves stale
// entries until their TTL runs out, so it is only logged.
func (r *references) invalidate(ctx context.Context, ownerID int64) {
	if r.stats == nil {
		return
	}
	if err := r.stats.Invalidate(ctx, ownerID); err != nil {
		r.logger.Warn("Failed to invalidate statistics cache",
			zap.Int64("owner_id", ownerID),
			zap.Error(err),
		)
	}
}
