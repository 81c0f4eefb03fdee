package partner

import (
	"strings"

	"github.com/finmanager/backend/internal/domain/shared"
)

// Company is a customer organisation shared between vendors through
// the user_companies link table
type Company struct {
	shared.BaseEntity
	Name        string  `gorm:"type:varchar(255);not null;index"`
	Address     *string `gorm:"type:varchar(500)"`
	LegalPerson *string `gorm:"type:varchar(255)"`
	Phone       *string `gorm:"type:varchar(50)"`
	Email       *string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (Company) TableName() string {
	return "companies"
}

// CompanyDetails carries the mutable company fields
type CompanyDetails struct {
	Name        string
	Address     *string
	LegalPerson *string
	Phone       *string
	Email       *string
}

// NewCompany creates a new company
func NewCompany(d CompanyDetails) (*Company, error) {
	name, err := validateName("Company", d.Name)
	if err != nil {
		return nil, err
	}
	return &Company{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Address:     d.Address,
		LegalPerson: d.LegalPerson,
		Phone:       d.Phone,
		Email:       d.Email,
	}, nil
}

// Rename changes the company name
func (c *Company) Rename(name string) error {
	name, err := validateName("Company", name)
	if err != nil {
		return err
	}
	c.Name = name
	c.Touch()
	return nil
}

// SetContact replaces the optional contact fields
func (c *Company) SetContact(address, legalPerson, phone, email *string) {
	c.Address = address
	c.LegalPerson = legalPerson
	c.Phone = phone
	c.Email = email
	c.Touch()
}

// Matches reports whether every field equals the given details
func (c *Company) Matches(d CompanyDetails) bool {
	return c.Name == strings.TrimSpace(d.Name) &&
		equalOptional(c.Address, d.Address) &&
		equalOptional(c.LegalPerson, d.LegalPerson) &&
		equalOptional(c.Phone, d.Phone) &&
		equalOptional(c.Email, d.Email)
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func validateName(entity, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", shared.NewDomainError("INVALID_INPUT", entity+" name cannot be empty")
	}
	if len(name) > 255 {
		return "", shared.NewDomainError("INVALID_INPUT", entity+" name cannot exceed 255 characters")
	}
	return name, nil
}
