package persistence

import (
	"context"
	"errors"

	"github.com/finmanager/backend/internal/domain/partner"
	"github.com/finmanager/backend/internal/domain/shared"
	"github.com/finmanager/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormSupplierRepository implements SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

func (r *GormSupplierRepository) linked(ctx context.Context, userID int64) *gorm.DB {
	ids := r.db.WithContext(ctx).Model(&userSupplierLink{}).Select("supplier_id").Where("user_id = ?", userID)
	return r.db.WithContext(ctx).Model(&partner.Supplier{}).Where("id IN (?)", ids)
}

// applySearch matches the keyword against name, phone, email and address
func (r *GormSupplierRepository) applySearch(query *gorm.DB, search string) *gorm.DB {
	pattern := containsPattern(search)
	if pattern == "" {
		return query
	}
	return query.Where(
		`(lower(name) LIKE ? ESCAPE '\' OR lower(coalesce(phone_number, '')) LIKE ? ESCAPE '\' `+
			`OR lower(coalesce(email, '')) LIKE ? ESCAPE '\' OR lower(coalesce(address, '')) LIKE ? ESCAPE '\')`,
		pattern, pattern, pattern, pattern,
	)
}

// FindForUser finds a supplier linked to the user
func (r *GormSupplierRepository) FindForUser(ctx context.Context, userID, id int64) (*partner.Supplier, error) {
	var supplier partner.Supplier
	if err := r.linked(ctx, userID).Where("id = ?", id).First(&supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// FindAllForUser lists linked suppliers ordered by id
func (r *GormSupplierRepository) FindAllForUser(ctx context.Context, userID int64, filter shared.Filter) ([]partner.Supplier, error) {
	filter = filter.Normalize(shared.DefaultLimit)
	query := r.applySearch(r.linked(ctx, userID), filter.Search).Order("id ASC")

	var suppliers []partner.Supplier
	if err := paginate(query, filter.Skip, filter.Limit).Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// CountForUser counts linked suppliers matching filter.Search
func (r *GormSupplierRepository) CountForUser(ctx context.Context, userID int64, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.applySearch(r.linked(ctx, userID), filter.Search).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNameForUser checks for a linked supplier with the exact name
func (r *GormSupplierRepository) ExistsByNameForUser(ctx context.Context, userID int64, name string, excludeID int64) (bool, error) {
	query := r.linked(ctx, userID).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	return exists(query)
}

// CreateForUser inserts the supplier and its link row in one transaction
func (r *GormSupplierRepository) CreateForUser(ctx context.Context, userID int64, supplier *partner.Supplier) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(supplier).Error; err != nil {
			return err
		}
		return tx.Create(&userSupplierLink{UserID: userID, SupplierID: supplier.ID}).Error
	})
}

// Save updates a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

// Delete removes the supplier and every user link
func (r *GormSupplierRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("supplier_id = ?", id).Delete(&userSupplierLink{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&partner.Supplier{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// HasPurchases reports whether any purchase references the supplier
func (r *GormSupplierRepository) HasPurchases(ctx context.Context, id int64) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&trade.Purchase{}).Where("supplier_id = ?", id))
}

// Ensure GormSupplierRepository implements SupplierRepository
var _ partner.SupplierRepository = (*GormSupplierRepository)(nil)
