package persistence

import (
	"context"
	"errors"

	"github.com/finmanager/backend/internal/domain/partner"
	"github.com/finmanager/backend/internal/domain/shared"
	"github.com/finmanager/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// tradeRecord is satisfied by the purchase and sale models
type tradeRecord interface {
	trade.Purchase | trade.Sale
}

// applyTradeFilter narrows an owner's records by a normalized ListFilter.
// Customer and company conditions use sub-selects so the outer query never
// needs qualified column names.
func applyTradeFilter(db, query *gorm.DB, f trade.ListFilter) *gorm.DB {
	if f.TypeID != nil {
		query = query.Where("type_id = ?", *f.TypeID)
	}
	if f.CustomerID != nil {
		query = query.Where("customer_id = ?", *f.CustomerID)
	}
	if f.CompanyID != nil {
		ids := db.Model(&partner.Customer{}).Select("id").Where("company_id = ?", *f.CompanyID)
		query = query.Where("customer_id IN (?)", ids)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if pattern := containsPattern(f.Search); pattern != "" {
		matching := db.Table("customers AS c").
			Select("c.id").
			Joins("LEFT JOIN companies AS co ON co.id = c.company_id").
			Where(`lower(c.name) LIKE ? ESCAPE '\' OR lower(coalesce(co.name, '')) LIKE ? ESCAPE '\'`, pattern, pattern)
		query = query.Where(`(lower(coalesce(item_name, '')) LIKE ? ESCAPE '\' OR customer_id IN (?))`, pattern, matching)
	}
	if f.DateFrom != nil {
		query = query.Where("date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		query = query.Where("date <= ?", *f.DateTo)
	}
	if f.AmountMin != nil {
		query = query.Where("total_price >= ?", *f.AmountMin)
	}
	if f.AmountMax != nil {
		query = query.Where("total_price <= ?", *f.AmountMax)
	}
	return query
}

func findRecord[T tradeRecord](ctx context.Context, db *gorm.DB, ownerID, id int64) (*T, error) {
	var rec T
	if err := db.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// listRecords counts the matching rows before paging and returns one page
// ordered by date desc, id desc
func listRecords[T tradeRecord](ctx context.Context, db *gorm.DB, ownerID int64, f trade.ListFilter) ([]T, int64, error) {
	db = db.WithContext(ctx)
	query := applyTradeFilter(db, db.Model(new(T)).Where("owner_id = ?", ownerID), f)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := make([]T, 0)
	if total == 0 {
		return items, 0, nil
	}
	err := paginate(query.Order("date DESC").Order("id DESC"), f.Skip, f.Limit).Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func deleteRecord[T tradeRecord](ctx context.Context, db *gorm.DB, ownerID, id int64) error {
	result := db.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, id).Delete(new(T))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormPurchaseRepository implements PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindForOwner finds a purchase owned by ownerID
func (r *GormPurchaseRepository) FindForOwner(ctx context.Context, ownerID, id int64) (*trade.Purchase, error) {
	return findRecord[trade.Purchase](ctx, r.db, ownerID, id)
}

// List returns a page of the owner's purchases and the unpaged total
func (r *GormPurchaseRepository) List(ctx context.Context, ownerID int64, filter trade.ListFilter) ([]trade.Purchase, int64, error) {
	return listRecords[trade.Purchase](ctx, r.db, ownerID, filter)
}

// Create inserts a purchase
func (r *GormPurchaseRepository) Create(ctx context.Context, p *trade.Purchase) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// Save updates a purchase
func (r *GormPurchaseRepository) Save(ctx context.Context, p *trade.Purchase) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete removes an owner's purchase
func (r *GormPurchaseRepository) Delete(ctx context.Context, ownerID, id int64) error {
	return deleteRecord[trade.Purchase](ctx, r.db, ownerID, id)
}

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindForOwner finds a sale owned by ownerID
func (r *GormSaleRepository) FindForOwner(ctx context.Context, ownerID, id int64) (*trade.Sale, error) {
	return findRecord[trade.Sale](ctx, r.db, ownerID, id)
}

// List returns a page of the owner's sales and the unpaged total
func (r *GormSaleRepository) List(ctx context.Context, ownerID int64, filter trade.ListFilter) ([]trade.Sale, int64, error) {
	return listRecords[trade.Sale](ctx, r.db, ownerID, filter)
}

// Create inserts a sale
func (r *GormSaleRepository) Create(ctx context.Context, s *trade.Sale) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// Save updates a sale
func (r *GormSaleRepository) Save(ctx context.Context, s *trade.Sale) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// Delete removes an owner's sale
func (r *GormSaleRepository) Delete(ctx context.Context, ownerID, id int64) error {
	return deleteRecord[trade.Sale](ctx, r.db, ownerID, id)
}

var (
	_ trade.PurchaseRepository = (*GormPurchaseRepository)(nil)
	_ trade.SaleRepository     = (*GormSaleRepository)(nil)
)
