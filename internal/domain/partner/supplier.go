package partner

import "github.com/finmanager/backend/internal/domain/shared"

// Supplier is a vendor's source of goods. Suppliers are visible through
// the user_suppliers link table and may be referenced by purchases.
type Supplier struct {
	shared.BaseEntity
	Name        string  `gorm:"type:varchar(255);not null;index"`
	PhoneNumber *string `gorm:"type:varchar(50)"`
	Email       *string `gorm:"type:varchar(255)"`
	Address     *string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(name string, phone, email, address *string) (*Supplier, error) {
	name, err := validateName("Supplier", name)
	if err != nil {
		return nil, err
	}
	return &Supplier{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		PhoneNumber: phone,
		Email:       email,
		Address:     address,
	}, nil
}

// Rename changes the supplier name
func (s *Supplier) Rename(name string) error {
	name, err := validateName("Supplier", name)
	if err != nil {
		return err
	}
	s.Name = name
	s.Touch()
	return nil
}

// SetContact replaces the contact fields
func (s *Supplier) SetContact(phone, email, address *string) {
	s.PhoneNumber = phone
	s.Email = email
	s.Address = address
	s.Touch()
}
