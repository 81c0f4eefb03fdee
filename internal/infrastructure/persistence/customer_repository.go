package persistence

import (
	"context"
	"errors"

	"github.com/finmanager/backend/internal/domain/partner"
	"github.com/finmanager/backend/internal/domain/shared"
	"github.com/finmanager/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) linked(ctx context.Context, userID int64) *gorm.DB {
	ids := r.db.WithContext(ctx).Model(&userCustomerLink{}).Select("customer_id").Where("user_id = ?", userID)
	return r.db.WithContext(ctx).Model(&partner.Customer{}).Where("id IN (?)", ids)
}

// FindForUser finds a customer linked to the user
func (r *GormCustomerRepository) FindForUser(ctx context.Context, userID, id int64) (*partner.Customer, error) {
	var customer partner.Customer
	if err := r.linked(ctx, userID).Where("id = ?", id).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindAllForUser lists linked customers. Company ids are never negative,
// so ordering by company_id puts unaffiliated customers first.
func (r *GormCustomerRepository) FindAllForUser(ctx context.Context, userID int64, companyID *int64, filter shared.Filter) ([]partner.Customer, error) {
	filter = filter.Normalize(shared.DefaultLimit)
	query := r.linked(ctx, userID)
	if companyID != nil {
		query = query.Where("company_id = ?", *companyID)
	}
	if pattern := containsPattern(filter.Search); pattern != "" {
		query = query.Where(`lower(name) LIKE ? ESCAPE '\'`, pattern)
	}

	var customers []partner.Customer
	query = query.Order("company_id ASC").Order("id ASC")
	if err := paginate(query, filter.Skip, filter.Limit).Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// CreateForUser inserts the customer and its link row in one transaction
func (r *GormCustomerRepository) CreateForUser(ctx context.Context, userID int64, customer *partner.Customer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(customer).Error; err != nil {
			return err
		}
		return tx.Create(&userCustomerLink{UserID: userID, CustomerID: customer.ID}).Error
	})
}

// Save updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// Delete removes the customer and every user link
func (r *GormCustomerRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", id).Delete(&userCustomerLink{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&partner.Customer{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// HasTrade reports whether any purchase or sale references the customer
func (r *GormCustomerRepository) HasTrade(ctx context.Context, id int64) (bool, error) {
	found, err := exists(r.db.WithContext(ctx).Model(&trade.Purchase{}).Where("customer_id = ?", id))
	if err != nil || found {
		return found, err
	}
	return exists(r.db.WithContext(ctx).Model(&trade.Sale{}).Where("customer_id = ?", id))
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
