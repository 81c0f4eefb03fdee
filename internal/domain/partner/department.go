package partner

import "github.com/finmanager/backend/internal/domain/shared"

// Department belongs to a company; customers can be members of it
type Department struct {
	shared.BaseEntity
	Name      string `gorm:"type:varchar(255);not null"`
	CompanyID int64  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Department) TableName() string {
	return "departments"
}

// NewDepartment creates a department inside a company
func NewDepartment(name string, companyID int64) (*Department, error) {
	name, err := validateName("Department", name)
	if err != nil {
		return nil, err
	}
	if companyID <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid company id")
	}
	return &Department{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		CompanyID:  companyID,
	}, nil
}

// Rename changes the department name
func (d *Department) Rename(name string) error {
	name, err := validateName("Department", name)
	if err != nil {
		return err
	}
	d.Name = name
	d.Touch()
	return nil
}

// MoveTo attaches the department to another company
func (d *Department) MoveTo(companyID int64) {
	d.CompanyID = companyID
	d.Touch()
}
