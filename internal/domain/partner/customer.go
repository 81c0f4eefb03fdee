package partner

import "github.com/finmanager/backend/internal/domain/shared"

// UnaffiliatedCompanyID marks a customer that belongs to no company
const UnaffiliatedCompanyID int64 = 0

// Customer is a contact person, optionally working for a company and
// department. Vendors see customers through the user_customers link table.
type Customer struct {
	shared.BaseEntity
	Name         string  `gorm:"type:varchar(255);not null"`
	PhoneNumber  *string `gorm:"type:varchar(50)"`
	Email        *string `gorm:"type:varchar(255)"`
	Position     *string `gorm:"type:varchar(255)"`
	CompanyID    int64   `gorm:"not null;default:0;index"`
	DepartmentID *int64  `gorm:"index"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// CustomerDetails carries the mutable customer fields
type CustomerDetails struct {
	Name         string
	PhoneNumber  *string
	Email        *string
	Position     *string
	CompanyID    int64
	DepartmentID *int64
}

// NewCustomer creates a new customer
func NewCustomer(d CustomerDetails) (*Customer, error) {
	name, err := validateName("Customer", d.Name)
	if err != nil {
		return nil, err
	}
	if err := ValidateCompanyID(d.CompanyID); err != nil {
		return nil, err
	}
	return &Customer{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		PhoneNumber:  d.PhoneNumber,
		Email:        d.Email,
		Position:     d.Position,
		CompanyID:    d.CompanyID,
		DepartmentID: d.DepartmentID,
	}, nil
}

// IsAffiliated reports whether the customer belongs to a company
func (c *Customer) IsAffiliated() bool {
	return c.CompanyID != UnaffiliatedCompanyID
}

// Rename changes the customer name
func (c *Customer) Rename(name string) error {
	name, err := validateName("Customer", name)
	if err != nil {
		return err
	}
	c.Name = name
	c.Touch()
	return nil
}

// AssignCompany moves the customer to a company, 0 detaching it
func (c *Customer) AssignCompany(companyID int64) error {
	if err := ValidateCompanyID(companyID); err != nil {
		return err
	}
	c.CompanyID = companyID
	c.Touch()
	return nil
}

// AssignDepartment sets or clears the department
func (c *Customer) AssignDepartment(departmentID *int64) {
	c.DepartmentID = departmentID
	c.Touch()
}

// ValidateCompanyID rejects negative company references
func ValidateCompanyID(companyID int64) error {
	if companyID < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Invalid company id")
	}
	return nil
}
