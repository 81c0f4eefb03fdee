package catalog

import (
	"strings"
	"time"

	"github.com/finmanager/backend/internal/domain/shared"
)

// Type is a user-defined category applied to purchases and sales
type Type struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_types_owner_name"`
	OwnerID   int64     `gorm:"not null;uniqueIndex:idx_types_owner_name"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Type) TableName() string {
	return "types"
}

// NewType creates a type owned by ownerID
func NewType(ownerID int64, name string) (*Type, error) {
	name, err := validateTypeName(name)
	if err != nil {
		return nil, err
	}
	return &Type{
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Rename changes the type name
func (t *Type) Rename(name string) error {
	name, err := validateTypeName(name)
	if err != nil {
		return err
	}
	t.Name = name
	return nil
}

func validateTypeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", shared.NewDomainError("INVALID_INPUT", "Type name cannot be empty")
	}
	if len(name) > 255 {
		return "", shared.NewDomainError("INVALID_INPUT", "Type name cannot exceed 255 characters")
	}
	return name, nil
}
