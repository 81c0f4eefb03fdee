package partner

import (
	"github.com/finmanager/backend/internal/domain/partner"
	"github.com/finmanager/backend/internal/domain/shared"
)

// =============================================================================
// Company DTOs
// =============================================================================

// CreateCompanyRequest represents a request to create a company
type CreateCompanyRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
	LegalPerson *string `json:"legal_person" binding:"omitempty,max=255"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Email       *string `json:"email" binding:"omitempty,email,max=255"`
}

func (r CreateCompanyRequest) details() partner.CompanyDetails {
	return partner.CompanyDetails{
		Name:        r.Name,
		Address:     r.Address,
		LegalPerson: r.LegalPerson,
		Phone:       r.Phone,
		Email:       r.Email,
	}
}

// UpdateCompanyRequest applies the fields present in the body
type UpdateCompanyRequest struct {
	Name        shared.Nullable[string] `json:"name" binding:"omitempty,max=255"`
	Address     shared.Nullable[string] `json:"address" binding:"omitempty,max=500"`
	LegalPerson shared.Nullable[string] `json:"legal_person" binding:"omitempty,max=255"`
	Phone       shared.Nullable[string] `json:"phone" binding:"omitempty,max=50"`
	Email       shared.Nullable[string] `json:"email" binding:"omitempty,email,max=255"`
}

// CompanyResponse represents a company in API responses
type CompanyResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Address     *string `json:"address"`
	LegalPerson *string `json:"legal_person"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
}

// ToCompanyResponse converts a domain company
func ToCompanyResponse(c *partner.Company) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Address:     c.Address,
		LegalPerson: c.LegalPerson,
		Phone:       c.Phone,
		Email:       c.Email,
	}
}

// =============================================================================
// Department DTOs
// =============================================================================

// CreateDepartmentRequest represents a request to create a department
type CreateDepartmentRequest struct {
	Name      string `json:"name" binding:"required,max=255"`
	CompanyID int64  `json:"company_id" binding:"required"`
}

// UpdateDepartmentRequest applies the fields present in the body
type UpdateDepartmentRequest struct {
	Name      shared.Nullable[string] `json:"name" binding:"omitempty,max=255"`
	CompanyID shared.Nullable[int64]  `json:"company_id"`
}

// DepartmentResponse represents a department in API responses
type DepartmentResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CompanyID int64  `json:"company_id"`
}

// ToDepartmentResponse converts a domain department
func ToDepartmentResponse(d *partner.Department) DepartmentResponse {
	return DepartmentResponse{ID: d.ID, Name: d.Name, CompanyID: d.CompanyID}
}

// =============================================================================
// Customer DTOs
// =============================================================================

// CreateCustomerRequest represents a request to create a customer.
// CompanyID 0 creates an unaffiliated customer.
type CreateCustomerRequest struct {
	Name         string  `json:"name" binding:"required,max=255"`
	PhoneNumber  *string `json:"phone_number" binding:"omitempty,max=50"`
	Email        *string `json:"email" binding:"omitempty,email,max=255"`
	Position     *string `json:"position" binding:"omitempty,max=255"`
	CompanyID    *int64  `json:"company_id" binding:"required"`
	DepartmentID *int64  `json:"department_id"`
}

// UpdateCustomerRequest applies the fields present in the body. A null
// company_id detaches the customer from its company.
type UpdateCustomerRequest struct {
	Name         shared.Nullable[string] `json:"name" binding:"omitempty,max=255"`
	PhoneNumber  shared.Nullable[string] `json:"phone_number" binding:"omitempty,max=50"`
	Email        shared.Nullable[string] `json:"email" binding:"omitempty,email,max=255"`
	Position     shared.Nullable[string] `json:"position" binding:"omitempty,max=255"`
	CompanyID    shared.Nullable[int64]  `json:"company_id"`
	DepartmentID shared.Nullable[int64]  `json:"department_id"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	PhoneNumber  *string `json:"phone_number"`
	Email        *string `json:"email"`
	Position     *string `json:"position"`
	CompanyID    int64   `json:"company_id"`
	DepartmentID *int64  `json:"department_id"`
}

// ToCustomerResponse converts a domain customer
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		PhoneNumber:  c.PhoneNumber,
		Email:        c.Email,
		Position:     c.Position,
		CompanyID:    c.CompanyID,
		DepartmentID: c.DepartmentID,
	}
}

// CustomerGroup is the customers of one company, 0 meaning unaffiliated
type CustomerGroup struct {
	CompanyID int64              `json:"company_id"`
	Customers []CustomerResponse `json:"customers"`
}

// GroupCustomers groups an ordered customer page by company in first-seen
// order
func GroupCustomers(customers []partner.Customer) []CustomerGroup {
	groups := make([]CustomerGroup, 0)
	index := make(map[int64]int)
	for i := range customers {
		c := &customers[i]
		pos, ok := index[c.CompanyID]
		if !ok {
			pos = len(groups)
			index[c.CompanyID] = pos
			groups = append(groups, CustomerGroup{CompanyID: c.CompanyID, Customers: []CustomerResponse{}})
		}
		groups[pos].Customers = append(groups[pos].Customers, ToCustomerResponse(c))
	}
	return groups
}

// =============================================================================
// Supplier DTOs
// =============================================================================

// CreateSupplierRequest represents a request to create a supplier
type CreateSupplierRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=50"`
	Email       *string `json:"email" binding:"omitempty,email,max=255"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
}

// UpdateSupplierRequest applies the fields present in the body
type UpdateSupplierRequest struct {
	Name        shared.Nullable[string] `json:"name" binding:"omitempty,max=255"`
	PhoneNumber shared.Nullable[string] `json:"phone_number" binding:"omitempty,max=50"`
	Email       shared.Nullable[string] `json:"email" binding:"omitempty,email,max=255"`
	Address     shared.Nullable[string] `json:"address" binding:"omitempty,max=500"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	PhoneNumber *string `json:"phone_number"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
}

// ToSupplierResponse converts a domain supplier
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		PhoneNumber: s.PhoneNumber,
		Email:       s.Email,
		Address:     s.Address,
	}
}
