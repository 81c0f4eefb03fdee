package persistence

import (
	"context"
	"errors"

	"github.com/finmanager/backend/internal/domain/partner"
	"github.com/finmanager/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDepartmentRepository implements DepartmentRepository using GORM.
// A department is visible when its company is linked to the user.
type GormDepartmentRepository struct {
	db *gorm.DB
}

// NewGormDepartmentRepository creates a new GormDepartmentRepository
func NewGormDepartmentRepository(db *gorm.DB) *GormDepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

func (r *GormDepartmentRepository) accessible(ctx context.Context, userID int64) *gorm.DB {
	linked := r.db.WithContext(ctx).Model(&userCompanyLink{}).Select("company_id").Where("user_id = ?", userID)
	return r.db.WithContext(ctx).Model(&partner.Department{}).Where("company_id IN (?)", linked)
}

// FindForUser finds an accessible department
func (r *GormDepartmentRepository) FindForUser(ctx context.Context, userID, id int64) (*partner.Department, error) {
	var department partner.Department
	if err := r.accessible(ctx, userID).Where("id = ?", id).First(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &department, nil
}

// FindAllForUser lists accessible departments ordered by company and name
func (r *GormDepartmentRepository) FindAllForUser(ctx context.Context, userID int64, companyID *int64, filter shared.Filter) ([]partner.Department, error) {
	filter = filter.Normalize(shared.DefaultLimit)
	query := r.accessible(ctx, userID)
	if companyID != nil {
		query = query.Where("company_id = ?", *companyID)
	}
	if pattern := containsPattern(filter.Search); pattern != "" {
		query = query.Where(`lower(name) LIKE ? ESCAPE '\'`, pattern)
	}

	var departments []partner.Department
	query = query.Order("company_id ASC").Order("name ASC").Order("id ASC")
	if err := paginate(query, filter.Skip, filter.Limit).Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

// Create inserts a department
func (r *GormDepartmentRepository) Create(ctx context.Context, department *partner.Department) error {
	return r.db.WithContext(ctx).Create(department).Error
}

// Save updates a department
func (r *GormDepartmentRepository) Save(ctx context.Context, department *partner.Department) error {
	return r.db.WithContext(ctx).Save(department).Error
}

// Delete removes a department
func (r *GormDepartmentRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&partner.Department{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// HasCustomers reports whether any customer is assigned to the department
func (r *GormDepartmentRepository) HasCustomers(ctx context.Context, id int64) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&partner.Customer{}).Where("department_id = ?", id))
}

// Ensure GormDepartmentRepository implements DepartmentRepository
var _ partner.DepartmentRepository = (*GormDepartmentRepository)(nil)
