package persistence

import (
	"context"
	"errors"

	"github.com/finmanager/backend/internal/domain/partner"
	"github.com/finmanager/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCompanyRepository implements CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// linkedCompanyIDs selects the ids of the companies linked to userID
func (r *GormCompanyRepository) linkedCompanyIDs(ctx context.Context, userID int64) *gorm.DB {
	return r.db.WithContext(ctx).Model(&userCompanyLink{}).Select("company_id").Where("user_id = ?", userID)
}

// FindForUser finds a company linked to the user
func (r *GormCompanyRepository) FindForUser(ctx context.Context, userID, id int64) (*partner.Company, error) {
	var company partner.Company
	err := r.db.WithContext(ctx).
		Where("id = ? AND id IN (?)", id, r.linkedCompanyIDs(ctx, userID)).
		First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// FindAllForUser lists linked companies ordered by id
func (r *GormCompanyRepository) FindAllForUser(ctx context.Context, userID int64, filter shared.Filter) ([]partner.Company, error) {
	filter = filter.Normalize(shared.DefaultLimit)
	query := r.db.WithContext(ctx).Model(&partner.Company{}).
		Where("id IN (?)", r.linkedCompanyIDs(ctx, userID))
	if pattern := containsPattern(filter.Search); pattern != "" {
		query = query.Where(`lower(name) LIKE ? ESCAPE '\'`, pattern)
	}

	var companies []partner.Company
	if err := paginate(query.Order("id ASC"), filter.Skip, filter.Limit).Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// FindByNameForUser finds a linked company by exact name
func (r *GormCompanyRepository) FindByNameForUser(ctx context.Context, userID int64, name string) (*partner.Company, error) {
	var company partner.Company
	err := r.db.WithContext(ctx).
		Where("name = ? AND id IN (?)", name, r.linkedCompanyIDs(ctx, userID)).
		Order("id ASC").
		First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// IsLinked reports whether the company is linked to the user
func (r *GormCompanyRepository) IsLinked(ctx context.Context, userID, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userCompanyLink{}).
		Where("user_id = ? AND company_id = ?", userID, id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateForUser inserts the company and its link row in one transaction
func (r *GormCompanyRepository) CreateForUser(ctx context.Context, userID int64, company *partner.Company) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(company).Error; err != nil {
			return err
		}
		return tx.Create(&userCompanyLink{UserID: userID, CompanyID: company.ID}).Error
	})
}

// Save updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, company *partner.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

// Delete removes the company and every user link
func (r *GormCompanyRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ?", id).Delete(&userCompanyLink{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&partner.Company{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// HasCustomers reports whether any customer references the company
func (r *GormCompanyRepository) HasCustomers(ctx context.Context, id int64) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&partner.Customer{}).Where("company_id = ?", id))
}

// HasDepartments reports whether any department references the company
func (r *GormCompanyRepository) HasDepartments(ctx context.Context, id int64) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&partner.Department{}).Where("company_id = ?", id))
}

// Ensure GormCompanyRepository implements CompanyRepository
var _ partner.CompanyRepository = (*GormCompanyRepository)(nil)
