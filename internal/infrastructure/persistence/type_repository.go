package persistence

import (
	"context"
	"errors"

	"github.com/finmanager/backend/internal/domain/catalog"
	"github.com/finmanager/backend/internal/domain/shared"
	"github.com/finmanager/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTypeRepository implements TypeRepository using GORM
type GormTypeRepository struct {
	db *gorm.DB
}

// NewGormTypeRepository creates a new GormTypeRepository
func NewGormTypeRepository(db *gorm.DB) *GormTypeRepository {
	return &GormTypeRepository{db: db}
}

// FindForOwner finds a type owned by ownerID
func (r *GormTypeRepository) FindForOwner(ctx context.Context, ownerID, id int64) (*catalog.Type, error) {
	var t catalog.Type
	if err := r.db.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindAllForOwner lists the owner's types ordered by id
func (r *GormTypeRepository) FindAllForOwner(ctx context.Context, ownerID int64, filter shared.Filter) ([]catalog.Type, error) {
	filter = filter.Normalize(shared.DefaultLimit)
	query := r.db.WithContext(ctx).Model(&catalog.Type{}).Where("owner_id = ?", ownerID)
	if pattern := containsPattern(filter.Search); pattern != "" {
		query = query.Where(`lower(name) LIKE ? ESCAPE '\'`, pattern)
	}

	var types []catalog.Type
	if err := paginate(query.Order("id ASC"), filter.Skip, filter.Limit).Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// ExistsByName checks for an owner's type with the exact name
func (r *GormTypeRepository) ExistsByName(ctx context.Context, ownerID int64, name string, excludeID int64) (bool, error) {
	query := r.db.WithContext(ctx).Model(&catalog.Type{}).Where("owner_id = ? AND name = ?", ownerID, name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	return exists(query)
}

// Create inserts a type. The (owner_id, name) unique index backs up the
// service level duplicate check.
func (r *GormTypeRepository) Create(ctx context.Context, t *catalog.Type) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Save updates a type
func (r *GormTypeRepository) Save(ctx context.Context, t *catalog.Type) error {
	if err := r.db.WithContext(ctx).Save(t).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete clears the type from the owner's purchases and sales and removes it
func (r *GormTypeRepository) Delete(ctx context.Context, ownerID, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&trade.Purchase{}, &trade.Sale{}} {
			err := tx.Model(model).
				Where("owner_id = ? AND type_id = ?", ownerID, id).
				UpdateColumn("type_id", nil).Error
			if err != nil {
				return err
			}
		}
		result := tx.Where("owner_id = ? AND id = ?", ownerID, id).Delete(&catalog.Type{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormTypeRepository implements TypeRepository
var _ catalog.TypeRepository = (*GormTypeRepository)(nil)
