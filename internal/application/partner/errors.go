package partner

import (
	"errors"

	"github.com/finmanager/backend/internal/domain/shared"
)

var (
	ErrCompanyNotFound    = shared.NewDomainError("NOT_FOUND", "Company not found")
	ErrDepartmentNotFound = shared.NewDomainError("NOT_FOUND", "Department not found")
	ErrCustomerNotFound   = shared.NewDomainError("NOT_FOUND", "Customer not found")
	ErrSupplierNotFound   = shared.NewDomainError("NOT_FOUND", "Supplier not found")

	ErrCompanyConflict        = shared.NewDomainError("INVALID_INPUT", "Company name already exists with different details")
	ErrCompanyHasCustomers    = shared.NewDomainError("INVALID_INPUT", "Company has linked contacts")
	ErrCompanyHasDepartments  = shared.NewDomainError("INVALID_INPUT", "Company has linked departments")
	ErrDepartmentCompanyNull  = shared.NewDomainError("INVALID_INPUT", "company_id cannot be null")
	ErrDepartmentHasCustomers = shared.NewDomainError("INVALID_INPUT", "Department has linked customers")
	ErrDepartmentMismatch     = shared.NewDomainError("INVALID_INPUT", "Department does not belong to company")
	ErrCustomerNotAccessible  = shared.NewDomainError("FORBIDDEN", "Customer not accessible")
	ErrCustomerHasTrade       = shared.NewDomainError("INVALID_INPUT", "Customer has linked purchases or sales")
	ErrSupplierExists         = shared.NewDomainError("ALREADY_EXISTS", "Supplier already exists")
	ErrSupplierHasPurchases   = shared.NewDomainError("INVALID_INPUT", "Supplier has linked purchases")
)

// notFound replaces a repository ErrNotFound with a specific message
func notFound(err error, specific *shared.DomainError) error {
	if errors.Is(err, shared.ErrNotFound) {
		return specific
	}
	return err
}
