package partner

import (
	"context"

	"github.com/finmanager/backend/internal/domain/partner"
	"github.com/finmanager/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockCompanyRepository is a mock implementation of CompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindForUser(ctx context.Context, userID, id int64) (*partner.Company, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindAllForUser(ctx context.Context, userID int64, filter shared.Filter) ([]partner.Company, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]partner.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindByNameForUser(ctx context.Context, userID int64, name string) (*partner.Company, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Company), args.Error(1)
}

func (m *MockCompanyRepository) IsLinked(ctx context.Context, userID, id int64) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompanyRepository) CreateForUser(ctx context.Context, userID int64, company *partner.Company) error {
	args := m.Called(ctx, userID, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) Save(ctx context.Context, company *partner.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCompanyRepository) HasCustomers(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompanyRepository) HasDepartments(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockDepartmentRepository is a mock implementation of DepartmentRepository
type MockDepartmentRepository struct {
	mock.Mock
}

func (m *MockDepartmentRepository) FindForUser(ctx context.Context, userID, id int64) (*partner.Department, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Department), args.Error(1)
}

func (m *MockDepartmentRepository) FindAllForUser(ctx context.Context, userID int64, companyID *int64, filter shared.Filter) ([]partner.Department, error) {
	args := m.Called(ctx, userID, companyID, filter)
	return args.Get(0).([]partner.Department), args.Error(1)
}

func (m *MockDepartmentRepository) Create(ctx context.Context, department *partner.Department) error {
	args := m.Called(ctx, department)
	return args.Error(0)
}

func (m *MockDepartmentRepository) Save(ctx context.Context, department *partner.Department) error {
	args := m.Called(ctx, department)
	return args.Error(0)
}

func (m *MockDepartmentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDepartmentRepository) HasCustomers(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindForUser(ctx context.Context, userID, id int64) (*partner.Customer, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAllForUser(ctx context.Context, userID int64, companyID *int64, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, userID, companyID, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) CreateForUser(ctx context.Context, userID int64, customer *partner.Customer) error {
	args := m.Called(ctx, userID, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) HasTrade(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockSupplierRepository is a mock implementation of SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindForUser(ctx context.Context, userID, id int64) (*partner.Supplier, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAllForUser(ctx context.Context, userID int64, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) CountForUser(ctx context.Context, userID int64, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) ExistsByNameForUser(ctx context.Context, userID int64, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, userID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupplierRepository) CreateForUser(ctx context.Context, userID int64, supplier *partner.Supplier) error {
	args := m.Called(ctx, userID, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSupplierRepository) HasPurchases(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var (
	_ partner.CompanyRepository    = (*MockCompanyRepository)(nil)
	_ partner.DepartmentRepository = (*MockDepartmentRepository)(nil)
	_ partner.CustomerRepository   = (*MockCustomerRepository)(nil)
	_ partner.SupplierRepository   = (*MockSupplierRepository)(nil)
)
