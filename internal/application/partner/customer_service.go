package partner

import (
	"context"

	"github.com/finmanager/backend/internal/domain/partner"
	"github.com/finmanager/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CustomerService handles customer business operations
type CustomerService struct {
	customerRepo   partner.CustomerRepository
	companyRepo    partner.CompanyRepository
	departmentRepo partner.DepartmentRepository
	logger         *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	customerRepo partner.CustomerRepository,
	companyRepo partner.CompanyRepository,
	departmentRepo partner.DepartmentRepository,
	logger *zap.Logger,
) *CustomerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerService{
		customerRepo:   customerRepo,
		companyRepo:    companyRepo,
		departmentRepo: departmentRepo,
		logger:         logger,
	}
}

// List pages through the user's customers, unaffiliated first, and groups
// the page by company
func (s *CustomerService) List(ctx context.Context, userID int64, companyID *int64, filter shared.Filter) ([]CustomerGroup, error) {
	customers, err := s.customerRepo.FindAllForUser(ctx, userID, companyID, filter.Normalize(shared.DefaultLimit))
	if err != nil {
		return nil, err
	}
	return GroupCustomers(customers), nil
}

// Create adds a customer and links it to the user
func (s *CustomerService) Create(ctx context.Context, userID int64, req CreateCustomerRequest) (*CustomerResponse, error) {
	companyID := int64(0)
	if req.CompanyID != nil {
		companyID = *req.CompanyID
	}
	if err := s.checkCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}
	if err := s.checkDepartment(ctx, userID, companyID, req.DepartmentID); err != nil {
		return nil, err
	}

	customer, err := partner.NewCustomer(partner.CustomerDetails{
		Name:         req.Name,
		PhoneNumber:  req.PhoneNumber,
		Email:        req.Email,
		Position:     req.Position,
		CompanyID:    companyID,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.CreateForUser(ctx, userID, customer); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// Get returns a linked customer. A customer whose company is no longer
// linked to the user is forbidden.
func (s *CustomerService) Get(ctx context.Context, userID, id int64) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindForUser(ctx, userID, id)
	if err != nil {
		return nil, notFound(err, ErrCustomerNotFound)
	}
	if customer.IsAffiliated() {
		linked, err := s.companyRepo.IsLinked(ctx, userID, customer.CompanyID)
		if err != nil {
			return nil, err
		}
		if !linked {
			return nil, ErrCustomerNotAccessible
		}
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// Update applies the present fields. A null company_id detaches the
// customer.
func (s *CustomerService) Update(ctx context.Context, userID, id int64, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindForUser(ctx, userID, id)
	if err != nil {
		return nil, notFound(err, ErrCustomerNotFound)
	}

	companyChanged := false
	if req.CompanyID.IsSpecified() {
		companyID := req.CompanyID.Value()
		if req.CompanyID.IsNull() {
			companyID = partner.UnaffiliatedCompanyID
		}
		if err := s.checkCompany(ctx, userID, companyID); err != nil {
			return nil, err
		}
		companyChanged = companyID != customer.CompanyID
		if err := customer.AssignCompany(companyID); err != nil {
			return nil, err
		}
	}

	switch {
	case req.DepartmentID.IsSpecified():
		if err := s.checkDepartment(ctx, userID, customer.CompanyID, req.DepartmentID.Ptr()); err != nil {
			return nil, err
		}
		customer.AssignDepartment(req.DepartmentID.Ptr())
	case companyChanged && customer.DepartmentID != nil && customer.IsAffiliated():
		if err := s.checkDepartment(ctx, userID, customer.CompanyID, customer.DepartmentID); err != nil {
			return nil, err
		}
	}

	if req.Name.IsSpecified() {
		if err := customer.Rename(req.Name.Value()); err != nil {
			return nil, err
		}
	}
	customer.PhoneNumber = req.PhoneNumber.Apply(customer.PhoneNumber)
	customer.Email = req.Email.Apply(customer.Email)
	customer.Position = req.Position.Apply(customer.Position)
	customer.Touch()

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// Delete removes a customer no purchase or sale references
func (s *CustomerService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.customerRepo.FindForUser(ctx, userID, id); err != nil {
		return notFound(err, ErrCustomerNotFound)
	}
	hasTrade, err := s.customerRepo.HasTrade(ctx, id)
	if err != nil {
		return err
	}
	if hasTrade {
		return ErrCustomerHasTrade
	}
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return notFound(err, ErrCustomerNotFound)
	}
	s.logger.Info("Customer deleted", zap.Int64("customer_id", id), zap.Int64("user_id", userID))
	return nil
}

// checkCompany validates a company reference; 0 is always allowed
func (s *CustomerService) checkCompany(ctx context.Context, userID, companyID int64) error {
	if err := partner.ValidateCompanyID(companyID); err != nil {
		return err
	}
	if companyID == partner.UnaffiliatedCompanyID {
		return nil
	}
	linked, err := s.companyRepo.IsLinked(ctx, userID, companyID)
	if err != nil {
		return err
	}
	if !linked {
		return ErrCompanyNotFound
	}
	return nil
}

// checkDepartment validates an optional department reference against the
// customer's company
func (s *CustomerService) checkDepartment(ctx context.Context, userID, companyID int64, departmentID *int64) error {
	if departmentID == nil {
		return nil
	}
	department, err := s.departmentRepo.FindForUser(ctx, userID, *departmentID)
	if err != nil {
		return notFound(err, ErrDepartmentNotFound)
	}
	if companyID != partner.UnaffiliatedCompanyID && department.CompanyID != companyID {
		return ErrDepartmentMismatch
	}
	return nil
}
